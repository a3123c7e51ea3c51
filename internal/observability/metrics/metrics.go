package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AuthRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"result"},
	)

	AuthLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	AuthRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_rejections_total",
			Help: "Requests short-circuited by the access-control chain.",
		},
		[]string{"reason"},
	)

	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of access tokens issued.",
		},
		[]string{"result"},
	)

	PasswordResetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_password_resets_total",
			Help: "Password reset requests and completions.",
		},
		[]string{"flow", "result"},
	)

	CaptchaVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captcha_verifications_total",
			Help: "Outcomes of reCAPTCHA verification calls.",
		},
		[]string{"result"},
	)

	MailsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mails_sent_total",
			Help: "Transactional mails handed to the SMTP relay.",
		},
		[]string{"template", "result"},
	)

	DeviceOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_operations_total",
			Help: "Device CRUD operations.",
		},
		[]string{"op", "result"},
	)
)

// MustRegister registers all collectors on the default registry, labelled with the service name.
func MustRegister(serviceName string) {
	reg := prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, prometheus.DefaultRegisterer)
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		AuthRegistrationsTotal,
		AuthLoginsTotal,
		AuthRejectionsTotal,
		TokensIssuedTotal,
		PasswordResetsTotal,
		CaptchaVerificationsTotal,
		MailsSentTotal,
		DeviceOperationsTotal,
	)
}

// Result maps an error to the "success"/"failure" label value.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
