package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// User Activity Metrics
	NewUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_new_users_total",
		Help: "Total number of new user registrations.",
	})
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts (successful and failed).",
	}, []string{"status"}) // status: "success" or "failed"

	// OTP lifecycle metrics
	OTPIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_otp_issued_total",
		Help: "Total number of OTP codes generated.",
	}, []string{"purpose"}) // purpose: "verify" or "reset"
	OTPConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_otp_consumed_total",
		Help: "Total number of OTP confirmation attempts.",
	}, []string{"purpose", "result"}) // result: "success", "invalid" or "expired"
	EmailsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_emails_sent_total",
		Help: "Total number of notification emails dispatched.",
	}, []string{"status"})

	// Content metrics
	CampaignCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_campaign_created_total",
		Help: "Total number of campaigns created.",
	})
	BlogCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_blog_created_total",
		Help: "Total number of blog posts created.",
	})
	ResourceCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_resource_created_total",
		Help: "Total number of resources created.",
	})
)
