package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "readit_votes_total",
	Help: "Number of vote requests by outcome",
}, []string{"kind", "result"})

var SpamReports = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "readit_spam_reports_total",
	Help: "Number of spam reports by outcome",
}, []string{"kind", "result"})

var ContentRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "readit_spam_removals_total",
	Help: "Number of posts removed or comments collapsed at the spam threshold",
}, []string{"kind"})

var ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "readit_moderation_actions_total",
	Help: "Number of moderator actions applied",
}, []string{"action"})

var OutboxDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "readit_outbox_deliveries_total",
	Help: "Number of outbox events handed to the sender",
}, []string{"result"})
