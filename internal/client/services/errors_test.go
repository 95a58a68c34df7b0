package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestCatchHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{400, NotifyClientError},
		{403, NotifyClientError},
		{404, NotifyClientError},
		{499, NotifyClientError},
		{500, NotifyServerError},
		{502, NotifyServerError},
		{0, NotifyServerError},
		{302, NotifyServerError},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, CatchHTTPError(tt.status))
		})
	}
}

func TestNotification(t *testing.T) {
	assert.Equal(t, NotifyClientError, Notification(&client.HTTPError{StatusCode: 403}))
	assert.Equal(t, NotifyServerError, Notification(fmt.Errorf("wrap: %w", &client.HTTPError{StatusCode: 503})))
	assert.Equal(t, NotifyClientError, Notification(fmt.Errorf("%w: name", common.ErrValidation)))
	assert.Equal(t, NotifyClientError, Notification(client.ErrUnauthorized))
	assert.Equal(t, NotifyServerError, Notification(errors.New("boom")))
}
