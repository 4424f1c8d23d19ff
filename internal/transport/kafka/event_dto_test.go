package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afercon/delivery-notifier/internal/domain"
	"github.com/afercon/delivery-notifier/internal/service/rules"
	"github.com/afercon/delivery-notifier/internal/transport/kafka"
)

func TestToDomain_DeliveryCreation(t *testing.T) {
	t.Parallel()

	got, err := kafka.ToDomain(kafka.ChangeEventDTO{
		Collection: "deliveries",
		DocumentID: "  delivery-1  ",
		New: &kafka.DocumentDTO{
			Title:  "  Pacote A  ",
			Status: "  available  ",
			UserID: " customer-1 ",
		},
	})
	require.NoError(t, err)
	require.Nil(t, got.Profile)
	require.NotNil(t, got.Delivery)

	require.Equal(t, rules.CollectionDeliveries, got.Delivery.Collection)
	require.Equal(t, "delivery-1", got.Delivery.DocumentID)
	require.Nil(t, got.Delivery.Previous)
	require.Equal(t, &domain.Delivery{
		ID:     "delivery-1",
		Title:  "Pacote A",
		Status: domain.StatusAvailable,
		UserID: "customer-1",
	}, got.Delivery.New)
}

func TestToDomain_DeliveryTransition(t *testing.T) {
	t.Parallel()

	got, err := kafka.ToDomain(kafka.ChangeEventDTO{
		Collection: "deliveries",
		DocumentID: "delivery-1",
		Previous:   &kafka.DocumentDTO{Status: "available", UserID: "customer-1"},
		New:        &kafka.DocumentDTO{Status: "inProgress", UserID: "customer-1", DriverID: "driver-1"},
	})
	require.NoError(t, err)
	require.NotNil(t, got.Delivery)
	require.Equal(t, domain.StatusAvailable, got.Delivery.Previous.Status)
	require.Equal(t, domain.StatusInProgress, got.Delivery.New.Status)
	require.Equal(t, "driver-1", got.Delivery.New.DriverID)
}

func TestToDomain_UserUpsert(t *testing.T) {
	t.Parallel()

	got, err := kafka.ToDomain(kafka.ChangeEventDTO{
		Collection: "users",
		DocumentID: "driver-1",
		New: &kafka.DocumentDTO{
			Name:     "  Rui  ",
			IsDriver: true,
			FCMToken: "  tok-1  ",
		},
	})
	require.NoError(t, err)
	require.Nil(t, got.Delivery)
	require.NotNil(t, got.Profile)
	require.Equal(t, "driver-1", got.Profile.UserID)
	require.Equal(t, &domain.UserProfile{
		ID:        "driver-1",
		Name:      "Rui",
		IsDriver:  true,
		PushToken: "tok-1",
	}, got.Profile.New)
}

func TestToDomain_UserDeletion(t *testing.T) {
	t.Parallel()

	got, err := kafka.ToDomain(kafka.ChangeEventDTO{
		Collection: "users",
		DocumentID: "driver-1",
		Previous:   &kafka.DocumentDTO{Name: "Rui"},
	})
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	require.Nil(t, got.Profile.New)
}

func TestToDomain_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		dto  kafka.ChangeEventDTO
	}{
		{"empty document id", kafka.ChangeEventDTO{
			Collection: "deliveries",
			New:        &kafka.DocumentDTO{Status: "available"},
		}},
		{"no document state", kafka.ChangeEventDTO{
			Collection: "deliveries",
			DocumentID: "delivery-1",
		}},
		{"unknown collection", kafka.ChangeEventDTO{
			Collection: "payments",
			DocumentID: "p-1",
			New:        &kafka.DocumentDTO{},
		}},
		{"invalid status", kafka.ChangeEventDTO{
			Collection: "deliveries",
			DocumentID: "delivery-1",
			New:        &kafka.DocumentDTO{Status: "pending"},
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := kafka.ToDomain(tc.dto)
			require.Error(t, err)

			var perm kafka.PermanentError
			require.ErrorAs(t, err, &perm, "rejections must be permanent, never redelivered")
		})
	}
}
