package briefing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
)

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "acme.com", ExtractDomain("jane@acme.com"))
	assert.Equal(t, "acme.com", ExtractDomain("jane@ACME.COM"))
	assert.Empty(t, ExtractDomain("not-an-email"))
	assert.Empty(t, ExtractDomain("trailing@"))
}

func TestIsCommonEmailDomain(t *testing.T) {
	assert.True(t, IsCommonEmailDomain("gmail.com"))
	assert.True(t, IsCommonEmailDomain("GMAIL.COM"))
	assert.True(t, IsCommonEmailDomain("protonmail.com"))
	assert.False(t, IsCommonEmailDomain("acme.com"))
}

func TestInferCompanyDomain(t *testing.T) {
	tests := []struct {
		name      string
		organizer string
		attendees []string
		want      string
	}{
		{
			name:      "organizer corporate domain wins",
			organizer: "host@acme.com",
			attendees: []string{"a@widgets.io"},
			want:      "acme.com",
		},
		{
			name:      "public organizer falls through to attendees in order",
			organizer: "host@gmail.com",
			attendees: []string{"a@yahoo.com", "b@widgets.io", "c@acme.com"},
			want:      "widgets.io",
		},
		{
			name:      "all public domains yields nothing",
			organizer: "host@gmail.com",
			attendees: []string{"a@outlook.com", "b@hotmail.com"},
			want:      "",
		},
		{
			name:      "case-insensitive public domain check",
			organizer: "host@GMail.com",
			attendees: []string{"a@Acme.com"},
			want:      "acme.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meeting := &entities.Meeting{
				Organizer: entities.Participant{Email: tt.organizer},
			}
			for _, email := range tt.attendees {
				meeting.Attendees = append(meeting.Attendees, entities.Participant{Email: email})
			}
			assert.Equal(t, tt.want, InferCompanyDomain(meeting))
		})
	}
}

func TestCompanyNameFromDomain(t *testing.T) {
	assert.Equal(t, "Acme", CompanyNameFromDomain("acme.com"))
	assert.Equal(t, "Acme Labs", CompanyNameFromDomain("acme-labs.io"))
	assert.Equal(t, "Big Co", CompanyNameFromDomain("big_co.dev"))
	assert.Equal(t, "Acme", CompanyNameFromDomain("acme"))
}

func TestExtractLinkedInURLs(t *testing.T) {
	text := `Agenda attached.
	Profiles: https://www.linkedin.com/in/jane-doe and linkedin.com/in/bob_smith
	Jane again: http://LinkedIn.com/in/Jane-Doe`

	got := ExtractLinkedInURLs(text)
	assert.Equal(t, []string{
		"https://www.linkedin.com/in/jane-doe",
		"https://www.linkedin.com/in/bob_smith",
	}, got)
}

func TestExtractLinkedInURLsEmpty(t *testing.T) {
	assert.Nil(t, ExtractLinkedInURLs("no profiles here"))
}

func TestMatchLinkedInURL(t *testing.T) {
	urls := []string{
		"https://www.linkedin.com/in/jane-doe",
		"https://www.linkedin.com/in/bobsmith",
	}

	jane := entities.Participant{Email: "janedoe@acme.com", DisplayName: "Jane Doe"}
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", MatchLinkedInURL(jane, urls))

	bob := entities.Participant{Email: "bob@acme.com", DisplayName: "Bob Smith"}
	assert.Equal(t, "https://www.linkedin.com/in/bobsmith", MatchLinkedInURL(bob, urls))

	stranger := entities.Participant{Email: "carol@acme.com", DisplayName: "Carol"}
	assert.Empty(t, MatchLinkedInURL(stranger, urls))

	assert.Empty(t, MatchLinkedInURL(jane, nil))
}
