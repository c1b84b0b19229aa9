package indicators

import (
	"errors"
	"math"
	"testing"
	"time"

	"intel-terminal/internal/models"
)

func candles(closes ...float64) []models.Candle {
	out := make([]models.Candle, len(closes))
	day := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = models.Candle{Date: day.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c}
	}
	return out
}

func TestSMACalculate(t *testing.T) {
	sma := NewSMA(3)
	result, err := sma.Calculate(candles(1, 2, 3, 4, 5))
	if err != nil {
		t.Fatal(err)
	}

	if len(result) != 5 {
		t.Fatalf("len = %d, want 5", len(result))
	}
	// Warm-up slots stay zero.
	if result[0] != 0 || result[1] != 0 {
		t.Errorf("warm-up values = %v, %v, want 0", result[0], result[1])
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if got := result[i+2]; math.Abs(got-w) > 1e-9 {
			t.Errorf("result[%d] = %v, want %v", i+2, got, w)
		}
	}
}

func TestSMAInsufficientData(t *testing.T) {
	sma := NewSMA(50)
	if _, err := sma.Calculate(candles(1, 2, 3)); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("err = %v, want insufficient data", err)
	}
}

func TestSMAInvalidPeriod(t *testing.T) {
	sma := NewSMA(0)
	if _, err := sma.Calculate(candles(1, 2, 3)); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("err = %v, want invalid period", err)
	}
}

func TestRSIAllGainsIsHundred(t *testing.T) {
	rsi := NewRSI(14)
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	result, err := rsi.Calculate(candles(closes...))
	if err != nil {
		t.Fatal(err)
	}
	if got := result[len(result)-1]; got != 100 {
		t.Errorf("RSI on monotonic gains = %v, want 100", got)
	}
}

func TestRSIBounded(t *testing.T) {
	rsi := NewRSI(14)
	closes := make([]float64, 60)
	price := 100.0
	for i := range closes {
		if i%3 == 0 {
			price -= 2.5
		} else {
			price += 1.75
		}
		closes[i] = price
	}

	result, err := rsi.Calculate(candles(closes...))
	if err != nil {
		t.Fatal(err)
	}
	for i := rsi.Period(); i < len(result); i++ {
		if result[i] < 0 || result[i] > 100 {
			t.Errorf("RSI[%d] = %v out of [0,100]", i, result[i])
		}
	}
}

func TestRSIInsufficientData(t *testing.T) {
	rsi := NewRSI(14)
	if _, err := rsi.Calculate(candles(1, 2, 3)); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("err = %v, want insufficient data", err)
	}
}
