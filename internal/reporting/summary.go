// Package reporting derives the dashboard counters from document
// collections. Everything here is pure and read-only: order-independent
// functions that partition their input exactly once per bucket.
package reporting

import (
	"time"

	"polisflow/internal/document"
	"polisflow/internal/signature"
	"polisflow/internal/submission"
)

// SignatureSummary counts signature requests by workflow stage.
type SignatureSummary struct {
	Pending int `json:"pending"`
	Signed  int `json:"signed"`
	Expired int `json:"expired"`
}

// SubmissionSummary counts carrier submissions by adjudication stage.
type SubmissionSummary struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// SummarizeSignatures buckets every non-cancelled request exactly once.
// A pending request past its expiry counts as expired even before the sweep
// has materialized the transition; derived expiry and stored expiry land in
// the same bucket. Cancelled requests left the workflow and are excluded.
func SummarizeSignatures(reqs []signature.Request, now time.Time) SignatureSummary {
	var out SignatureSummary
	for i := range reqs {
		req := &reqs[i]
		switch {
		case req.Status == signature.StatusSigned:
			out.Signed++
		case req.Status == signature.StatusExpired:
			out.Expired++
		case req.Status == signature.StatusPending && req.IsExpired(now):
			out.Expired++
		case req.Status == signature.StatusPending:
			out.Pending++
		}
	}
	return out
}

// SummarizeSubmissions buckets every given submission exactly once.
func SummarizeSubmissions(subs []submission.Submission) SubmissionSummary {
	var out SubmissionSummary
	for i := range subs {
		switch subs[i].Status {
		case submission.StatusSent, submission.StatusProcessing:
			out.Pending++
		case submission.StatusApproved:
			out.Approved++
		case submission.StatusRejected:
			out.Rejected++
		}
	}
	return out
}

// SignaturesForDocuments gathers the full request history of the given
// documents and summarizes it.
func SignaturesForDocuments(docs []*document.Record, now time.Time) SignatureSummary {
	var reqs []signature.Request
	for _, rec := range docs {
		reqs = append(reqs, rec.SignatureRequests...)
	}
	return SummarizeSignatures(reqs, now)
}

// SubmissionsForDocuments summarizes the live-submission view: the latest
// submission per document. A rejection superseded by a retry is visible in
// history but does not count against the document twice.
func SubmissionsForDocuments(docs []*document.Record) SubmissionSummary {
	var latest []submission.Submission
	for _, rec := range docs {
		if len(rec.CarrierSubmissions) == 0 {
			continue
		}
		newest := rec.CarrierSubmissions[0]
		for _, sub := range rec.CarrierSubmissions[1:] {
			if sub.Seq > newest.Seq {
				newest = sub
			}
		}
		latest = append(latest, newest)
	}
	return SummarizeSubmissions(latest)
}
