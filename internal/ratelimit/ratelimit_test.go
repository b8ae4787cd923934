package ratelimit

import "testing"

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		key      string
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			key:      "10.0.0.1",
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			key:      "10.0.0.1",
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			krl := New(tt.rps, tt.burst)

			passed := 0
			for range tt.calls {
				if krl.Allow(tt.key) {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d requests, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	krl := New(1, 1)

	if !krl.Allow("10.0.0.1") {
		t.Error("first request for key 10.0.0.1 should pass")
	}
	if krl.Allow("10.0.0.1") {
		t.Error("second request for key 10.0.0.1 should be limited")
	}
	if !krl.Allow("10.0.0.2") {
		t.Error("key 10.0.0.2 has its own bucket and should pass")
	}
}
