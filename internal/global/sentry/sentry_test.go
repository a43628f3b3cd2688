package sentry

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
)

type codedErr int32

func (e codedErr) Error() string  { return "coded" }
func (e codedErr) GetCode() int32 { return int32(e) }

func TestShouldReport(t *testing.T) {
	assert.True(t, shouldReport(codedErr(50001)))
	assert.False(t, shouldReport(codedErr(40001)))
	assert.False(t, shouldReport(codedErr(40300)))
	assert.True(t, shouldReport(errors.New("plain")))
}

func TestScrubEvent(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{
		Cookies: "lab_session=abc",
		Data:    "password=secret",
		Headers: map[string]string{"Cookie": "lab_session=abc", "X-Csrf-Token": "t", "Accept": "text/html"},
	}}
	out := scrubEvent(event, nil)
	assert.Empty(t, out.Request.Cookies)
	assert.Empty(t, out.Request.Data)
	assert.NotContains(t, out.Request.Headers, "Cookie")
	assert.NotContains(t, out.Request.Headers, "X-Csrf-Token")
	assert.Equal(t, "text/html", out.Request.Headers["Accept"])
}
