package logger

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var commandEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

// ActionsFormatter renders entries as GitHub Actions workflow commands.
// Info entries are printed as plain lines, fields follow the message as
// key=value pairs.
type ActionsFormatter struct{}

func (f *ActionsFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	message := entry.Message
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok && err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != logrus.ErrorKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		message += fmt.Sprintf(" %s=%v", key, entry.Data[key])
	}

	var b bytes.Buffer
	switch entry.Level {
	case logrus.TraceLevel, logrus.DebugLevel:
		b.WriteString("::debug::")
	case logrus.WarnLevel:
		b.WriteString("::warning::")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		b.WriteString("::error::")
	default:
		b.WriteString(message)
		b.WriteByte('\n')
		return b.Bytes(), nil
	}
	b.WriteString(commandEscaper.Replace(message))
	b.WriteByte('\n')
	return b.Bytes(), nil
}
