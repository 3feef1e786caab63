// internal/models/application.go
package models

// AssessmentResult is a skill assessment attempt owned by the assessment service.
type AssessmentResult struct {
	ID                string `json:"id" db:"id"`
	UserID            string `json:"userId" db:"user_id"`
	Completed         bool   `json:"completed" db:"completed"`
	Passed            bool   `json:"passed" db:"passed"`
	CertificateIssued bool   `json:"certificateIssued" db:"certificate_issued"`
}

type AssessmentSummary struct {
	Completed    int `json:"completed"`
	Certificates int `json:"certificates"`
}

// SummarizeAssessments counts completed attempts and the certificates earned among them.
func SummarizeAssessments(results []AssessmentResult) AssessmentSummary {
	var s AssessmentSummary
	for _, r := range results {
		if !r.Completed {
			continue
		}
		s.Completed++
		if r.Passed && r.CertificateIssued {
			s.Certificates++
		}
	}
	return s
}
