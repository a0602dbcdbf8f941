package amqp_test

import (
	"testing"

	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/core/events/amqp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

func TestAMQP(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AMQP Suite")
}

var _ = Describe("NewPublishing", func() {
	It("publishes persistent JSON messages", func() {
		env, err := events.NewEnvelope(events.NewBudgetUpdatedEvent("user-2", "2024-03", decimal.NewFromInt(1200)))
		Expect(err).NotTo(HaveOccurred())

		msg, err := amqp.NewPublishing(env)
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.ContentType).To(Equal("application/json"))
		Expect(msg.DeliveryMode).To(Equal(amqp091.Persistent))
		Expect(msg.Type).To(Equal(events.EventTypeBudgetUpdated))
		Expect(msg.MessageId).To(Equal(env.ID))
	})
})
