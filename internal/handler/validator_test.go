package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

func TestValidatorUsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&registerReq{Email: "nope", Password: "short"})
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "enter a valid email address", ve.Fields["email"])
	assert.Equal(t, "must be at least 8 characters", ve.Fields["password"])
	assert.Equal(t, "this field is required", ve.Fields["password_confirm"])

	assert.NoError(t, v.Validate(&registerReq{Email: "a@b.io", Password: "longenough", PasswordConfirm: "longenough"}))
}

func TestJobRequestValidation(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&jobReq{})
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "experience")
}

func TestChatbotReplyRequiresMessage(t *testing.T) {
	h := &ChatbotHandler{}
	c, rec := newContext(http.MethodPost, "/v1/chatbot/reply", strings.NewReader(`{"message":""}`), echo.MIMEApplicationJSON)
	require.NoError(t, h.Reply(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"validation failed","fields":{"message":"this field is required"}}`, rec.Body.String())
}

func TestActRejectsBadMeetingTime(t *testing.T) {
	h := &ApplicationHandler{}
	body := `{"action":"schedule_meeting","meeting_datetime":"soon"}`
	c, rec := newContext(http.MethodPost, "/v1/applicants/9", strings.NewReader(body), echo.MIMEApplicationJSON)
	c.SetParamNames("id")
	c.SetParamValues("9")
	signedIn(c, 2, "CONSULTANT")

	require.NoError(t, h.Act(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "meeting_datetime")
}

func TestBadJSONIsBadRequest(t *testing.T) {
	h := &QueryHandler{}
	c, _ := newContext(http.MethodPost, "/v1/jobs/1/queries", strings.NewReader(`{"question":`), echo.MIMEApplicationJSON)
	c.SetParamNames("id")
	c.SetParamValues("1")
	signedIn(c, 5, "CANDIDATE")

	err := h.Ask(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestActionRequestAllowsEmptyAction(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(&actionReq{}))
}

func TestMeetingTimeOnlyReadForScheduling(t *testing.T) {
	at, err := meetingTimeFor(model.ActionShortlist, "soon")
	require.NoError(t, err)
	assert.Nil(t, at)

	at, err = meetingTimeFor(model.ApplicantAction(""), "soon")
	require.NoError(t, err)
	assert.Nil(t, at)

	_, err = meetingTimeFor(model.ActionScheduleMeeting, "soon")
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)

	at, err = meetingTimeFor(model.ActionChangeMeeting, "2025-04-02T10:30")
	require.NoError(t, err)
	require.NotNil(t, at)
	assert.Equal(t, 10, at.Hour())
}
