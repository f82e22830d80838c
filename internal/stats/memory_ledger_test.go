package stats

import (
	"sync"
	"testing"
)

func TestEnsureIsIdempotent(t *testing.T) {
	ledger := NewMemoryLedger()

	first, err := ledger.Ensure(1)
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if first.CapturedCount != 0 || first.ExchangedCount != 0 {
		t.Errorf("new row not zeroed: %+v", first)
	}

	again, _ := ledger.Ensure(1)
	if again.Id != first.Id {
		t.Errorf("ensure created a second row: %d vs %d", again.Id, first.Id)
	}

	all, _ := ledger.ListAll()
	if len(all) != 1 {
		t.Errorf("expected one row, got %d", len(all))
	}
}

func TestIncrementCreatesRowAtOne(t *testing.T) {
	ledger := NewMemoryLedger()

	row, err := ledger.IncrementCaptured(1)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if row.CapturedCount != 1 || row.ExchangedCount != 0 {
		t.Errorf("expected captured=1 exchanged=0, got %+v", row)
	}

	row, _ = ledger.IncrementExchanged(2)
	if row.CapturedCount != 0 || row.ExchangedCount != 1 {
		t.Errorf("expected captured=0 exchanged=1, got %+v", row)
	}
}

func TestGetWithoutRow(t *testing.T) {
	ledger := NewMemoryLedger()

	if _, err := ledger.Get(1); err != ErrNoStats {
		t.Errorf("expected ErrNoStats, got %v", err)
	}
}

func TestConcurrentFirstIncrementsCreateOneRow(t *testing.T) {
	ledger := NewMemoryLedger()

	const increments = 64

	var wg sync.WaitGroup
	for i := 0; i < increments; i++ {
		wg.Add(1)
		go func(exchange bool) {
			defer wg.Done()
			var err error
			if exchange {
				_, err = ledger.IncrementExchanged(1)
			} else {
				_, err = ledger.IncrementCaptured(1)
			}
			if err != nil {
				t.Errorf("increment failed: %v", err)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	all, err := ledger.ListAll()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("race-duplicated rows: %d", len(all))
	}
	if all[0].CapturedCount+all[0].ExchangedCount != increments {
		t.Errorf("lost updates: %+v", all[0])
	}
}

func TestCountersOnlyGrow(t *testing.T) {
	ledger := NewMemoryLedger()

	var lastCaptured, lastExchanged uint64
	operations := []func() error{
		func() error { _, err := ledger.Ensure(1); return err },
		func() error { _, err := ledger.IncrementCaptured(1); return err },
		func() error { _, err := ledger.IncrementExchanged(1); return err },
		func() error { _, err := ledger.Ensure(1); return err },
		func() error { _, err := ledger.IncrementExchanged(1); return err },
	}

	for i, op := range operations {
		if err := op(); err != nil {
			t.Fatalf("operation %d failed: %v", i, err)
		}
		row, _ := ledger.Get(1)
		if row.CapturedCount < lastCaptured || row.ExchangedCount < lastExchanged {
			t.Fatalf("counter decreased at step %d: %+v", i, row)
		}
		lastCaptured, lastExchanged = row.CapturedCount, row.ExchangedCount
	}

	final, _ := ledger.Get(1)
	if final.CapturedCount != 1 || final.ExchangedCount != 2 {
		t.Errorf("expected captured=1 exchanged=2, got %+v", final)
	}
}
