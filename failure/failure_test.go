package failure

import (
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	err := fmt.Errorf("bc2.txt: %w", Config("whitelist is empty"))
	if !errors.Is(err, ErrConfig) {
		t.Errorf("expected %v to be a config error", err)
	}
	if errors.Is(err, ErrPairMismatch) {
		t.Errorf("%v should not be a pair mismatch", err)
	}
	if err = PairMismatch("R2 ended after %d reads", 99); err.Error() != "read pair mismatch: R2 ended after 99 reads" {
		t.Errorf("unexpected message %q", err)
	}
	if !errors.Is(MalformedRead("short"), ErrMalformedRead) {
		t.Error("expected malformed read error")
	}
}
