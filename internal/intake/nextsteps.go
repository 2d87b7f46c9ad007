package intake

// DefaultCalendlyURL is the scheduling link offered after submission.
const DefaultCalendlyURL = "https://calendly.com/webmcpsetup"

// ExpectedResponseTime is how soon a submitter hears back.
const ExpectedResponseTime = "24 hours"

// NextSteps describes what happens after a submission.
type NextSteps struct {
	CalendlyURL          string   `json:"calendly_url"`
	ExpectedResponseTime string   `json:"expected_response_time"`
	NextSteps            []string `json:"next_steps"`
}

// GetNextSteps returns the post-submission guidance, using calendlyURL when set.
func GetNextSteps(calendlyURL string) NextSteps {
	if calendlyURL == "" {
		calendlyURL = DefaultCalendlyURL
	}
	return NextSteps{
		CalendlyURL:          calendlyURL,
		ExpectedResponseTime: ExpectedResponseTime,
		NextSteps: []string{
			"You will receive a confirmation email within 24 hours",
			"We will schedule a 30-minute discovery call to review your requirements",
			"You will receive a detailed proposal with scope, timeline, and pricing",
			"Upon approval, implementation begins within one week",
			"Most projects are completed within 2-4 weeks depending on complexity",
		},
	}
}

func acceptedNextSteps(email string) []string {
	return []string{
		"Confirmation email sent to " + email,
		"Discovery call will be scheduled within 24 hours",
		"Proposal with timeline and pricing will follow",
		"Implementation begins within one week of approval",
	}
}
