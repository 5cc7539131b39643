package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFilter(t *testing.T) {
	before := testutil.ToFloat64(FilterEvaluations.WithLabelValues("athletes", "query"))

	RecordFilter("athletes", "query", 3, 2*time.Millisecond)
	RecordFilter("athletes", "query", 0, time.Millisecond)

	after := testutil.ToFloat64(FilterEvaluations.WithLabelValues("athletes", "query"))
	assert.Equal(t, before+2, after)
}

func TestRecordVote(t *testing.T) {
	helpful := testutil.ToFloat64(VotesRecorded.WithLabelValues("faq", "true"))
	notHelpful := testutil.ToFloat64(VotesRecorded.WithLabelValues("faq", "false"))

	RecordVote("faq", true)
	RecordVote("faq", false)
	RecordVote("faq", true)

	assert.Equal(t, helpful+2, testutil.ToFloat64(VotesRecorded.WithLabelValues("faq", "true")))
	assert.Equal(t, notHelpful+1, testutil.ToFloat64(VotesRecorded.WithLabelValues("faq", "false")))
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/collections/:name/_filter", "200"))
	RecordAPIRequest("POST", "/collections/:name/_filter", "200", 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/collections/:name/_filter", "200")))
}
