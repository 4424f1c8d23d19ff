package config

import "time"

func DefaultPort() int { return 8080 }

func DefaultDB() DB {
	return DB{
		Host: "localhost",
		Port: "5432",
		User: "postgres",
		Pass: "postgres",
		Name: "notifications",
	}
}

func DefaultKafka() Kafka {
	return Kafka{
		Topic:   "document-changes",
		GroupID: "delivery-notifier",
	}
}

func DefaultPush() Push {
	return Push{
		Endpoint:    "https://fcm.googleapis.com/fcm/send",
		Timeout:     10 * time.Second,
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	}
}

func DefaultDispatch() Dispatch {
	return Dispatch{OperationTimeout: 5 * time.Second}
}

func DefaultPprof() PprofConfig {
	return PprofConfig{
		Enabled: false,
		Addr:    "127.0.0.1:6060",
	}
}

func DefaultRateLimit() RateLimit {
	return RateLimit{
		Enabled:    true,
		Rate:       25,
		Burst:      50,
		TTL:        10 * time.Minute,
		MaxBuckets: 10_000,
	}
}
