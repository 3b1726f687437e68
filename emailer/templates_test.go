package emailer

import (
	"strings"
	"testing"
)

func TestRenderAccepted(t *testing.T) {
	body, err := Render(acceptedTmpl, ApplicationMail{
		ApplicantName: "Alice",
		JobTitle:      "Baker",
		PosterName:    "Bob",
		AppURL:        "https://example.com",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Alice", "Baker", "Bob", "https://example.com/jobs"} {
		if !strings.Contains(body, want) {
			t.Fatalf("accepted body missing %q:\n%s", want, body)
		}
	}
}

func TestRenderRejectedOmitsPosterGreeting(t *testing.T) {
	body, err := Render(rejectedTmpl, ApplicationMail{
		ApplicantName: "Alice",
		JobTitle:      "Baker",
		PosterName:    "Bob",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, "not to move forward") {
		t.Fatalf("rejection copy missing:\n%s", body)
	}
	if !strings.Contains(body, "Alice") {
		t.Fatalf("applicant name missing:\n%s", body)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	body, err := Render(receivedTmpl, ApplicationMail{
		ApplicantName: `<script>alert("x")</script>`,
		JobTitle:      "Baker",
		PosterName:    "Bob",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatalf("template must escape injected markup:\n%s", body)
	}
}
