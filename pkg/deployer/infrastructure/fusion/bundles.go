package fusion

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

const bundlesPath = "/deployments/fusion/bundles"

// Upload streams the artifact as a multipart form. With overwrite set an
// existing bundle of the same name is replaced instead of rejected.
func (c *Client) Upload(ctx context.Context, bundle model.BundleName, artifact string, overwrite bool) error {
	file, err := os.Open(artifact)
	if err != nil {
		return model.NewError(
			model.KindUploadRejected,
			errors.Wrapf(err, "failed to open artifact %v", artifact),
			"The artifact to upload could not be read. Check the artifact path.\n",
		)
	}
	defer file.Close()

	var content io.Reader = file
	if c.progress != nil {
		info, err := file.Stat()
		if err != nil {
			return errors.Wrapf(err, "failed to stat artifact %v", artifact)
		}
		bar := pb.New64(info.Size()).SetTemplate(pb.Full).SetWriter(c.progress).Set(pb.Bytes, true).Start()
		defer bar.Finish()
		content = bar.NewProxyReader(file)
	}

	pipeReader, pipeWriter := io.Pipe()
	// Closing the reader unblocks the writer when the request ends early.
	defer pipeReader.Close()
	form := multipart.NewWriter(pipeWriter)
	go func() {
		pipeWriter.CloseWithError(writeBundleForm(form, bundle, filepath.Base(artifact), content))
	}()

	query := url.Values{}
	if overwrite {
		query.Set("overwrite", "true")
	}
	err = c.methodWithResp(ctx, http.MethodPost, bundlesPath, query, pipeReader, form.FormDataContentType(), nil)
	return classify(err, model.KindUploadRejected, "upload bundle "+bundle)
}

func writeBundleForm(form *multipart.Writer, bundle model.BundleName, fileName string, content io.Reader) error {
	err := form.WriteField("name", bundle)
	if err != nil {
		return err
	}
	part, err := form.CreateFormFile("artifact", fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, content)
	if err != nil {
		return err
	}
	return form.Close()
}

func (c *Client) DeleteBundle(ctx context.Context, bundle model.BundleName) error {
	err := c.post(ctx, bundlesPath+"/"+url.PathEscape(bundle)+"/delete", nil)
	return classify(err, model.KindDeleteFailed, "delete bundle "+bundle)
}
