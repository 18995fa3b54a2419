package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrNotificationsDisabled = errors.New("notifications not enabled")

type ErrNotificationFailed struct {
	statusCode int
}

func (e ErrNotificationFailed) Error() string {
	return fmt.Sprintf("ntfy wrong response - want: 200 OK, got: %d", e.statusCode)
}

func NewErrNotificationFailed(statusCode int) ErrNotificationFailed {
	return ErrNotificationFailed{statusCode: statusCode}
}

// Ntfy publishes bookshelf events to ntfy topics under baseURL.
type Ntfy struct {
	baseURL string
	enabled bool
	client  *http.Client
}

func NewNtfy(enableNotifications bool, notificationsBaseURL string, client *http.Client) *Ntfy {
	if client == nil {
		client = &http.Client{}
	}
	return &Ntfy{
		baseURL: strings.TrimRight(notificationsBaseURL, "/"),
		enabled: enableNotifications,
		client:  client,
	}
}

/* Announces a finished book on the Book_finished topic. */
func (ntf *Ntfy) BookFinished(ctx context.Context, title string, year int) error {
	if !ntf.enabled {
		return ErrNotificationsDisabled
	}
	topic := ntf.baseURL + "/Book_finished"
	message := fmt.Sprintf("Finished reading: %s (%d)", title, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, topic, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("delivering message (%s) to topic (%s): %w", message, topic, err)
	}
	resp, err := ntf.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivering message (%s) to topic (%s): %w", message, topic, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delivering message (%s) to topic (%s): %w", message, topic, NewErrNotificationFailed(resp.StatusCode))
	}
	return nil
}
