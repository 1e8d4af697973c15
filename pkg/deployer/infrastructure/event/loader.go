package event

import (
	"os"

	"github.com/google/go-github/v28/github"
	"github.com/pkg/errors"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

// Load reads the triggering event. Only pull request payloads carry anything
// the deployer needs, other events are identified by name alone.
func Load(name, payloadPath string) (model.TriggerEvent, error) {
	if name != model.EventPullRequest || payloadPath == "" {
		return model.TriggerEvent{Name: name}, nil
	}
	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return model.TriggerEvent{}, errors.Wrapf(err, "failed to read event payload %v", payloadPath)
	}
	return Parse(name, payload)
}

func Parse(name string, payload []byte) (model.TriggerEvent, error) {
	event := model.TriggerEvent{Name: name}
	if name != model.EventPullRequest {
		return event, nil
	}
	parsed, err := github.ParseWebHook(name, payload)
	if err != nil {
		return model.TriggerEvent{}, errors.Wrapf(err, "failed to parse %v event payload", name)
	}
	pullRequestEvent, ok := parsed.(*github.PullRequestEvent)
	if !ok {
		return model.TriggerEvent{}, errors.Errorf("unexpected payload type %T for %v event", parsed, name)
	}
	event.Action = pullRequestEvent.GetAction()
	event.Merged = pullRequestEvent.GetPullRequest().GetMerged()
	return event, nil
}
