package communication

import (
	"fmt"
	"os"

	"github.com/slack-go/slack"
)

// Slack posts operational messages from the batch jobs: run summaries to
// the info channel, failing runs to the error channel.
type Slack struct {
	client         *slack.Client
	infoChannelID  string
	errorChannelID string
}

// ConnectSlack builds the client from SLACK_BOT_TOKEN and the channel env
// vars. An empty token yields a client whose posts fail and get logged by
// the caller, which keeps batch runs alive without Slack configured.
func ConnectSlack() *Slack {
	return NewSlack(
		os.Getenv("SLACK_BOT_TOKEN"),
		os.Getenv("SLACK_INFO_CHANNEL"),
		os.Getenv("SLACK_ERROR_CHANNEL"),
	)
}

func NewSlack(token, infoChannelID, errorChannelID string) *Slack {
	return &Slack{
		client:         slack.New(token),
		infoChannelID:  infoChannelID,
		errorChannelID: errorChannelID,
	}
}

func (s *Slack) Info(message string) error {
	return s.post(s.infoChannelID, message)
}

func (s *Slack) Error(message string) error {
	return s.post(s.errorChannelID, message)
}

func (s *Slack) post(channelID, message string) error {
	_, _, err := s.client.PostMessage(
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}
