package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afercon/delivery-notifier/internal/apperr"
	"github.com/afercon/delivery-notifier/internal/domain"
	"github.com/afercon/delivery-notifier/internal/service/rules"
)

func deliveryDoc(status domain.DeliveryStatus) *domain.Delivery {
	return &domain.Delivery{
		ID:     "delivery-1",
		Title:  "Pacote A",
		Status: status,
		UserID: "customer-1",
	}
}

func TestEvaluate_Creation_FiresBroadcast(t *testing.T) {
	t.Parallel()

	intents, err := rules.Evaluate(rules.ChangeEvent{
		Collection: rules.CollectionDeliveries,
		DocumentID: "delivery-1",
		New:        deliveryDoc(domain.StatusAvailable),
	})
	require.NoError(t, err)
	require.Len(t, intents, 1)

	got := intents[0]
	require.Equal(t, rules.KindNewDeliveryBroadcast, got.Kind)
	require.True(t, got.Target.Broadcast)
	require.Empty(t, got.Target.UserID)
	require.Equal(t, "Nova Entrega Disponível!", got.Title)
	require.Equal(t, `Uma nova entrega "Pacote A" está disponível para aceitação.`, got.Body)
	require.Equal(t, "delivery-1", got.DeliveryID)
	require.False(t, got.Kind.Persistent(), "broadcast is push-only")
}

func TestEvaluate_Acceptance_FiresSingleUserNotice(t *testing.T) {
	t.Parallel()

	intents, err := rules.Evaluate(rules.ChangeEvent{
		Collection: rules.CollectionDeliveries,
		DocumentID: "delivery-1",
		Previous:   deliveryDoc(domain.StatusAvailable),
		New:        deliveryDoc(domain.StatusInProgress),
	})
	require.NoError(t, err)
	require.Len(t, intents, 1)

	got := intents[0]
	require.Equal(t, rules.KindDeliveryAcceptedNotice, got.Kind)
	require.False(t, got.Target.Broadcast)
	require.Equal(t, "customer-1", got.Target.UserID)
	require.Equal(t, "O seu pedido foi aceite!", got.Title)
	require.Equal(t, `Um motorista está a caminho para recolher a encomenda "Pacote A".`, got.Body)
	require.True(t, got.Kind.Persistent(), "acceptance notice also writes inbox records")
}

func TestEvaluate_Acceptance_EmptyTitleUsesGenericCopy(t *testing.T) {
	t.Parallel()

	doc := deliveryDoc(domain.StatusInProgress)
	doc.Title = ""
	prev := deliveryDoc(domain.StatusAvailable)
	prev.Title = ""

	intents, err := rules.Evaluate(rules.ChangeEvent{
		Collection: rules.CollectionDeliveries,
		DocumentID: "delivery-1",
		Previous:   prev,
		New:        doc,
	})
	require.NoError(t, err)
	require.Len(t, intents, 1)
	require.Equal(t, `Um motorista está a caminho para recolher a encomenda "O seu pedido".`, intents[0].Body)
}

func TestEvaluate_Acceptance_MissingUserID(t *testing.T) {
	t.Parallel()

	doc := deliveryDoc(domain.StatusInProgress)
	doc.UserID = ""

	intents, err := rules.Evaluate(rules.ChangeEvent{
		Collection: rules.CollectionDeliveries,
		DocumentID: "delivery-1",
		Previous:   deliveryDoc(domain.StatusAvailable),
		New:        doc,
	})
	require.ErrorIs(t, err, apperr.ErrMissingRecipient)
	require.Empty(t, intents)
}

func TestEvaluate_UnmodeledTransitionsStaySilent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		prev domain.DeliveryStatus
		next domain.DeliveryStatus
	}{
		{"completion", domain.StatusInProgress, domain.StatusCompleted},
		{"cancellation", domain.StatusAvailable, domain.StatusCancelled},
		{"cancel in progress", domain.StatusInProgress, domain.StatusCancelled},
		{"no change", domain.StatusAvailable, domain.StatusAvailable},
		{"reverse", domain.StatusInProgress, domain.StatusAvailable},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			intents, err := rules.Evaluate(rules.ChangeEvent{
				Collection: rules.CollectionDeliveries,
				DocumentID: "delivery-1",
				Previous:   deliveryDoc(tc.prev),
				New:        deliveryDoc(tc.next),
			})
			require.NoError(t, err)
			require.Empty(t, intents)
		})
	}
}

func TestEvaluate_UnrelatedFieldEditDoesNotFire(t *testing.T) {
	t.Parallel()

	prev := deliveryDoc(domain.StatusAvailable)
	next := deliveryDoc(domain.StatusAvailable)
	next.Title = "Pacote A (urgente)"

	intents, err := rules.Evaluate(rules.ChangeEvent{
		Collection: rules.CollectionDeliveries,
		DocumentID: "delivery-1",
		Previous:   prev,
		New:        next,
	})
	require.NoError(t, err)
	require.Empty(t, intents)
}

func TestEvaluate_OtherCollectionIgnored(t *testing.T) {
	t.Parallel()

	intents, err := rules.Evaluate(rules.ChangeEvent{
		Collection: "users",
		DocumentID: "user-1",
		New:        deliveryDoc(domain.StatusAvailable),
	})
	require.NoError(t, err)
	require.Empty(t, intents)
}

func TestEvaluate_DeletionIgnored(t *testing.T) {
	t.Parallel()

	intents, err := rules.Evaluate(rules.ChangeEvent{
		Collection: rules.CollectionDeliveries,
		DocumentID: "delivery-1",
		Previous:   deliveryDoc(domain.StatusAvailable),
		New:        nil,
	})
	require.NoError(t, err)
	require.Empty(t, intents)
}

func TestIntent_IdempotencyKey(t *testing.T) {
	t.Parallel()

	created := rules.Intent{Kind: rules.KindNewDeliveryBroadcast, DeliveryID: "delivery-1"}
	accepted := rules.Intent{Kind: rules.KindDeliveryAcceptedNotice, DeliveryID: "delivery-1"}

	require.Equal(t, "delivery-1:created", created.IdempotencyKey())
	require.Equal(t, "delivery-1:accepted", accepted.IdempotencyKey())
	require.NotEqual(t, created.IdempotencyKey(), accepted.IdempotencyKey())
}
