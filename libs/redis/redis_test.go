package redis

import "testing"

func TestNewRedisClientRejectsBadInput(t *testing.T) {
	if _, err := NewRedisClient("", "", 0); err == nil {
		t.Fatal("expected error for empty addr")
	}
	if _, err := NewRedisClient("   ", "", 0); err == nil {
		t.Fatal("expected error for blank addr")
	}
	if _, err := NewRedisClient("localhost:6379", "", -1); err == nil {
		t.Fatal("expected error for negative db index")
	}
}
