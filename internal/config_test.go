package internal_test

import (
	"time"

	"github.com/frahmantamala/finflow/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func validConfig() *internal.Config {
	return &internal.Config{
		Server: internal.ServerConfig{AllowedOrigins: "*", ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second},
		Database: internal.DatabaseConfig{
			Driver:       "postgres",
			MaxOpenConns: 10,
			MaxIdleConns: 2,
		},
		Security: internal.SecurityConfig{JWTSecret: "0123456789abcdef0123456789abcdef"},
		Cache:    internal.CacheConfig{Driver: "memory"},
		Events:   internal.EventsConfig{Broker: "none"},
	}
}

var _ = Describe("Config", func() {
	It("accepts a minimal valid configuration", func() {
		Expect(validConfig().Validate()).To(Succeed())
	})

	It("aggregates errors from every section", func() {
		cfg := validConfig()
		cfg.Security.JWTSecret = "short"
		cfg.Cache = internal.CacheConfig{Driver: "redis"}
		cfg.Events = internal.EventsConfig{Broker: "kafka"}

		err := cfg.Validate()
		Expect(err).To(MatchError(ContainSubstring("security config")))
		Expect(err).To(MatchError(ContainSubstring("cache config")))
		Expect(err).To(MatchError(ContainSubstring("events config")))
	})

	It("requires a default user for anonymous access", func() {
		cfg := validConfig()
		cfg.Security.AllowAnonymous = true
		cfg.Security.DefaultUserID = ""
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("default_user_id")))
	})

	It("rejects confidence thresholds outside 0..1", func() {
		cfg := validConfig()
		cfg.AI.ConfidenceThreshold = 1.5
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("confidence_threshold")))
	})

	It("rejects unknown timezones and negative budgets", func() {
		cfg := validConfig()
		cfg.App.Timezone = "Mars/Olympus_Mons"
		Expect(cfg.Validate()).To(HaveOccurred())

		cfg = validConfig()
		cfg.App.DefaultBudget = "-5"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("default_budget")))
	})

	It("falls back to defaults for the app settings", func() {
		app := internal.AppConfig{}
		loc, err := app.Location()
		Expect(err).NotTo(HaveOccurred())
		Expect(loc).To(Equal(time.Local))

		amount, err := app.MonthlyBudget()
		Expect(err).NotTo(HaveOccurred())
		Expect(amount.Equal(decimal.RequireFromString(internal.DefaultMonthlyBudget))).To(BeTrue())
	})

	It("only activates AI with a key", func() {
		ai := internal.AIConfig{Enabled: true}
		Expect(ai.Active()).To(BeFalse())
		ai.APIKey = "key"
		Expect(ai.Active()).To(BeTrue())
		Expect(ai.ModelName()).To(Equal(internal.DefaultGeminiModel))
	})

	DescribeTable("ParseBool",
		func(value string, def, expected bool) {
			Expect(internal.ParseBool(value, def)).To(Equal(expected))
		},
		Entry("yes", "yes", false, true),
		Entry("ON with spaces", " ON ", false, true),
		Entry("0", "0", true, false),
		Entry("off", "off", true, false),
		Entry("garbage keeps the default", "maybe", true, true),
	)

	It("reads the environment", func() {
		GinkgoT().Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		GinkgoT().Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
		GinkgoT().Setenv("ALLOW_ANONYMOUS", "yes")
		GinkgoT().Setenv("PORT", "9000")

		cfg := internal.LoadConfigFromEnv()
		Expect(cfg.Server.Port).To(Equal(9000))
		Expect(cfg.Events.KafkaBrokers).To(Equal([]string{"a:9092", "b:9092"}))
		Expect(cfg.Security.AllowAnonymous).To(BeTrue())
		Expect(cfg.Security.DefaultUserID).To(Equal(internal.DefaultUserID))
	})
})
