package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"testing"
)

func TestTotals_EmptyWallet(t *testing.T) {
	w := newTestWallet(t)

	got, err := w.Totals.Totals(context.Background(), false)
	if err != nil {
		t.Fatalf("Totals() error: %v", err)
	}
	want := Totals{YER: "0 YER", SAR: "0 SAR", USD: "0 USD"}
	if got != want {
		t.Errorf("Totals() = %+v, want %+v", got, want)
	}
	if _, ok := w.Totals.Cached(); !ok {
		t.Error("Totals() did not cache its result")
	}
}

func TestTotals_ConvertsAndSums(t *testing.T) {
	w := newTestWallet(t)

	// 1000 YER + 10 USD at the default 250 rate: 3500 YER in total,
	// 3500/250 = 14 USD, 3500/65 = 53.85 SAR after display rounding.
	if _, err := w.PutAsset(cashYER(1000)); err != nil {
		t.Fatalf("PutAsset() error: %v", err)
	}
	if _, err := w.PutAsset(cashUSD(10)); err != nil {
		t.Fatalf("PutAsset() error: %v", err)
	}

	got, err := w.Totals.Totals(context.Background(), false)
	if err != nil {
		t.Fatalf("Totals() error: %v", err)
	}
	want := Totals{YER: "3,500 YER", SAR: "53.85 SAR", USD: "14 USD"}
	if got != want {
		t.Errorf("Totals() = %+v, want %+v", got, want)
	}
}

func TestTotals_GoldAssetsUseTheGoldRate(t *testing.T) {
	w := newTestWallet(t)
	if err := w.SaveRates(250, 65, 100000); err != nil {
		t.Fatalf("SaveRates() error: %v", err)
	}
	// 2.5 grams at 100000 YER per gram.
	if _, err := w.PutAsset(Asset{Value: 2.5, Type: KindGold}); err != nil {
		t.Fatalf("PutAsset() error: %v", err)
	}

	got, err := w.Totals.Totals(context.Background(), false)
	if err != nil {
		t.Fatalf("Totals() error: %v", err)
	}
	if got.YER != "250,000 YER" {
		t.Errorf("Totals().YER = %q, want \"250,000 YER\"", got.YER)
	}
}

func TestTotals_CacheHitSkipsTheStore(t *testing.T) {
	w := newTestWallet(t)
	if _, err := w.PutAsset(cashYER(1000)); err != nil {
		t.Fatalf("PutAsset() error: %v", err)
	}
	first, err := w.Totals.Totals(context.Background(), false)
	if err != nil {
		t.Fatalf("Totals() error: %v", err)
	}

	// Write behind the cache's back, without the invalidation hook.
	if _, err := w.Store.Put(CollectionAssets, Record{"value": 5000.0, "currency": "YER", "type": KindCash}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	got, err := w.Totals.Totals(context.Background(), true)
	if err != nil {
		t.Fatalf("Totals(useCache) error: %v", err)
	}
	if got != first {
		t.Errorf("Totals(useCache) = %+v, want the cached %+v", got, first)
	}

	// Once invalidated, the next call recomputes even with useCache set.
	w.Totals.Invalidate()
	got, err = w.Totals.Totals(context.Background(), true)
	if err != nil {
		t.Fatalf("Totals(useCache) error: %v", err)
	}
	if got == first {
		t.Error("Totals(useCache) after Invalidate still served the stale value")
	}
}

// TestTotals_EveryMutationPathInvalidates pins the invalidation contract:
// each mutation path on assets or rates leaves the cache slot empty.
func TestTotals_EveryMutationPathInvalidates(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(t *testing.T, w *Wallet)
	}{
		{"PutAsset", func(t *testing.T, w *Wallet) {
			if _, err := w.PutAsset(cashYER(50)); err != nil {
				t.Fatal(err)
			}
		}},
		{"DeleteAsset", func(t *testing.T, w *Wallet) {
			if err := w.DeleteAsset(1); err != nil {
				t.Fatal(err)
			}
		}},
		{"SaveRates", func(t *testing.T, w *Wallet) {
			if err := w.SaveRates(260, 66, 125000); err != nil {
				t.Fatal(err)
			}
		}},
		{"SetRate", func(t *testing.T, w *Wallet) {
			if err := w.SetRate(KeyUSDToYER, 260); err != nil {
				t.Fatal(err)
			}
		}},
		{"Restore", func(t *testing.T, w *Wallet) {
			id, err := w.Backups.Create()
			if err != nil {
				t.Fatal(err)
			}
			if _, err := w.Totals.Totals(context.Background(), false); err != nil {
				t.Fatal(err)
			}
			if err := w.Backups.Restore(id); err != nil {
				t.Fatal(err)
			}
		}},
		{"Import", func(t *testing.T, w *Wallet) {
			id, err := w.Backups.Create()
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := w.Backups.Export(&buf, id); err != nil {
				t.Fatal(err)
			}
			if _, err := w.Totals.Totals(context.Background(), false); err != nil {
				t.Fatal(err)
			}
			if err := w.Backups.Import(&buf); err != nil {
				t.Fatal(err)
			}
		}},
		{"Reset", func(t *testing.T, w *Wallet) {
			if err := w.Reset(); err != nil {
				t.Fatal(err)
			}
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWallet(t)
			if _, err := w.PutAsset(cashYER(1000)); err != nil {
				t.Fatalf("PutAsset() error: %v", err)
			}
			// Prime the cache, then mutate.
			if _, err := w.Totals.Totals(context.Background(), false); err != nil {
				t.Fatalf("Totals() error: %v", err)
			}
			tc.mutate(t, w)
			if cached, ok := w.Totals.Cached(); ok {
				t.Errorf("cache slot still holds %+v after %s", cached, tc.name)
			}
		})
	}
}

func TestTotals_RoundTripThroughJSON(t *testing.T) {
	// Totals serialize with the historical lower-case keys.
	got := Totals{YER: "1 YER", SAR: "2 SAR", USD: "3 USD"}
	data, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"yer":"1 YER","sar":"2 SAR","usd":"3 USD"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
	var back Totals
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, got) {
		t.Errorf("round trip = %+v, want %+v", back, got)
	}
}
