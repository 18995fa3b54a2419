package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookshelf/cmd/api/notifications"
	"github.com/matryer/is"
)

func TestBookFinished(t *testing.T) {

	t.Run("notificates a finished book without errors", func(t *testing.T) {
		is := is.New(t)

		var gotPath, gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			gotPath = r.URL.Path
			gotBody = string(body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ntfy := notifications.NewNtfy(true, server.URL+"/bookshelf/", server.Client())
		err := ntfy.BookFinished(context.Background(), "The Dispossessed", 2024)
		is.NoErr(err)
		is.Equal(gotPath, "/bookshelf/Book_finished")
		is.Equal(gotBody, "Finished reading: The Dispossessed (2024)")
	})

	t.Run("disabled notifications should return a disabled error", func(t *testing.T) {
		is := is.New(t)

		ntfy := notifications.NewNtfy(false, "http://unused", nil)
		err := ntfy.BookFinished(context.Background(), "The Dispossessed", 2024)
		is.True(errors.Is(err, notifications.ErrNotificationsDisabled))
	})

	t.Run("a non 200 answer should return a notification failed error", func(t *testing.T) {
		is := is.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		ntfy := notifications.NewNtfy(true, server.URL, server.Client())
		err := ntfy.BookFinished(context.Background(), "The Dispossessed", 2024)
		var failed notifications.ErrNotificationFailed
		is.True(errors.As(err, &failed))
		is.Equal(failed, notifications.NewErrNotificationFailed(http.StatusTooManyRequests))
	})

	t.Run("expected context timeout error", func(t *testing.T) {
		is := is.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Millisecond)
		defer cancel()

		ntfy := notifications.NewNtfy(true, server.URL, server.Client())
		err := ntfy.BookFinished(ctx, "The Dispossessed", 2024)
		is.True(errors.Is(err, context.DeadlineExceeded))
	})
}
