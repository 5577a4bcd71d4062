package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, text, html string
}

// mockMailer はMailerインターフェースのモック実装です。
type mockMailer struct {
	sent []sentMail
	err  error
}

func (m *mockMailer) Send(_ context.Context, to, subject, text, html string) error {
	m.sent = append(m.sent, sentMail{to, subject, text, html})
	return m.err
}

func TestNotifier_Handle(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		expectedErr     error
		expectedSubject string
		textContains    string
	}{
		{
			name:            "submitted",
			body:            `{"type":"application.submitted","applicationId":1,"jobTitle":"Backend Engineer","company":"Acme","fullName":"Priya","email":"priya@example.com","status":"pending"}`,
			expectedSubject: "Application received: Backend Engineer at Acme",
			textContains:    "Thanks for applying to Backend Engineer at Acme",
		},
		{
			name:            "status changed without company",
			body:            `{"type":"application.status_changed","applicationId":1,"jobTitle":"SRE","fullName":"Priya","email":"priya@example.com","status":"accepted"}`,
			expectedSubject: "Your application for SRE is accepted",
			textContains:    "Your application for SRE is now accepted.",
		},
		{name: "failure: not json", body: `{`, expectedErr: ErrMalformedEvent},
		{name: "failure: unknown type", body: `{"type":"job.created","email":"a@b.c"}`, expectedErr: ErrMalformedEvent},
		{name: "failure: no recipient", body: `{"type":"application.submitted","email":" "}`, expectedErr: ErrMalformedEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockMailer{}
			err := NewNotifier(m, "Job Portal").Handle(context.Background(), []byte(tt.body))

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, m.sent)
				return
			}
			require.NoError(t, err)
			require.Len(t, m.sent, 1)
			assert.Equal(t, "priya@example.com", m.sent[0].to)
			assert.Equal(t, tt.expectedSubject, m.sent[0].subject)
			assert.Contains(t, m.sent[0].text, tt.textContains)
			assert.Contains(t, m.sent[0].text, "Job Portal")
			assert.Contains(t, m.sent[0].html, "<p>Hi Priya,</p>")
		})
	}
}

func TestNotifier_Handle_EscapesHTML(t *testing.T) {
	m := &mockMailer{}
	body := `{"type":"application.submitted","jobTitle":"<script>x</script>","fullName":"Priya","email":"priya@example.com"}`

	require.NoError(t, NewNotifier(m, "Job Portal").Handle(context.Background(), []byte(body)))
	assert.NotContains(t, m.sent[0].html, "<script>")
	assert.Contains(t, m.sent[0].html, "&lt;script&gt;")
}

func TestNotifier_Handle_SendFailure(t *testing.T) {
	m := &mockMailer{err: errors.New("mailgun: 500")}
	body := `{"type":"application.submitted","jobTitle":"SRE","fullName":"Priya","email":"priya@example.com"}`

	err := NewNotifier(m, "Job Portal").Handle(context.Background(), []byte(body))
	assert.ErrorContains(t, err, "mailgun: 500")
	assert.NotErrorIs(t, err, ErrMalformedEvent)
}
