package notify

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/lpbacktest/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Reporter con tablas en texto plano.
type Console struct {
	out    io.Writer
	period domain.Period
}

// NewConsole crea un reporter que escribe a stdout.
func NewConsole(period domain.Period) *Console {
	return &Console{out: os.Stdout, period: period}
}

// NewConsoleWriter crea un reporter para tests.
func NewConsoleWriter(w io.Writer, period domain.Period) *Console {
	return &Console{out: w, period: period}
}

// Report imprime un run completo, o una tabla comparativa si hay varios (sweep).
func (c *Console) Report(_ context.Context, results []domain.Result) error {
	switch len(results) {
	case 0:
		fmt.Fprintf(c.out, "[%s] no results\n", time.Now().Format("15:04:05"))
	case 1:
		c.printRun(results[0])
	default:
		c.printSweep(results)
	}
	return nil
}

// printRun imprime cabecera, tabla por periodo y resumen de un run.
func (c *Console) printRun(r domain.Result) {
	c.printHeader(r)

	if c.period == domain.PeriodDaily {
		c.printDaily(r)
	} else {
		c.printHourly(r)
	}

	c.printSummary(r)
}

func (c *Console) printHeader(r domain.Result) {
	p := r.Position
	fmt.Fprintf(c.out, "\n=== BACKTEST %s %s (fee %.2f%%) ===\n",
		r.Pool.Pair(), shortID(r.PoolID), r.Pool.FeeRate()*100)
	fmt.Fprintf(c.out, "  Run:        %s\n", r.RunID)
	fmt.Fprintf(c.out, "  Window:     %s → %s\n", unixLabel(r.From), unixLabel(r.To))
	fmt.Fprintf(c.out, "  Range:      [%s, %s] price token %d\n",
		num(p.MinPrice), num(p.MaxPrice), p.PriceToken)
	fmt.Fprintf(c.out, "  Investment: %s\n", num(p.Investment))
	fmt.Fprintf(c.out, "  Entry:      price %s  amount0 %s  amount1 %s  L %s\n\n",
		num(r.Entry.EntryPrice), num(r.Entry.Amount0), num(r.Entry.Amount1), num(r.Entry.Liquidity))
}

func (c *Console) printHourly(r domain.Result) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Time", "Close", "Active%", "Fee0", "Fee1", "FeeV", "Unbounded", "FeeUSD", "Amt0", "Amt1", "Value", "TR")

	for _, h := range r.Hourly {
		table.Append(
			h.Time().Format("2006-01-02 15:04"),
			num(h.BaseClose),
			fmt.Sprintf("%.1f", h.ActiveLiquidityPct),
			num(h.FeeToken0),
			num(h.FeeToken1),
			num(h.FeeValue),
			num(h.UnboundedFeeValue),
			fmt.Sprintf("$%.2f", h.FeeUSD),
			num(h.Amount0),
			num(h.Amount1),
			num(h.HoldingsValue),
			num(h.TokenRatioReturn),
		)
	}
	table.Render()
}

func (c *Console) printDaily(r domain.Result) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Hours", "Close", "Active%", "FeeV", "Unbounded", "FeeUSD", "Value", "%Fee", "TR")

	for _, d := range r.Daily {
		table.Append(
			d.Label(),
			fmt.Sprintf("%d", d.Count),
			num(d.BaseClose),
			fmt.Sprintf("%.1f", d.ActiveLiquidityPct),
			num(d.FeeValue),
			num(d.UnboundedFeeValue),
			fmt.Sprintf("$%.2f", d.FeeUSD),
			num(d.HoldingsValue),
			fmt.Sprintf("%.3f%%", d.PercFee),
			num(d.TokenRatioReturn),
		)
	}
	table.Render()
}

func (c *Console) printSummary(r domain.Result) {
	s := r.Summary
	fmt.Fprintf(c.out, "\n  --- SUMMARY ---\n")
	fmt.Fprintf(c.out, "  Periods:               %d (%d days)\n", s.Periods, s.Days)
	fmt.Fprintf(c.out, "  Fees token0:           %s\n", num(s.TotalFeeToken0))
	fmt.Fprintf(c.out, "  Fees token1:           %s\n", num(s.TotalFeeToken1))
	fmt.Fprintf(c.out, "  Fees (price token):    %s\n", num(s.TotalFeeValue))
	fmt.Fprintf(c.out, "  Fees USD:              $%.2f\n", s.TotalFeeUSD)
	fmt.Fprintf(c.out, "  Unbounded fees:        %s", num(s.TotalUnboundedFeeValue))
	if s.TotalUnboundedFeeValue > 0 {
		fmt.Fprintf(c.out, "  (range x%.2f)", s.TotalFeeValue/s.TotalUnboundedFeeValue)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "  Avg active liquidity:  %.1f%%\n", s.AvgActiveLiquidityPct)
	fmt.Fprintf(c.out, "  Final value:           %s\n", num(s.FinalHoldingsValue))
	fmt.Fprintf(c.out, "  Token ratio return:    %s\n", num(s.FinalTokenRatioReturn))
	fmt.Fprintf(c.out, "  Fee APR:               %.2f%%\n\n", s.FeeAPR)
}

// printSweep compara varias estrategias sobre las mismas velas.
func (c *Console) printSweep(results []domain.Result) {
	first := results[0]
	fmt.Fprintf(c.out, "\n=== SWEEP %s %s: %d strategies, %s → %s ===\n",
		first.Pool.Pair(), shortID(first.PoolID), len(results), unixLabel(first.From), unixLabel(first.To))

	best := 0
	for i, r := range results {
		if r.Summary.FeeAPR > results[best].Summary.FeeAPR {
			best = i
		}
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Min", "Max", "Active%", "FeeV", "FeeUSD", "Unbounded", "TR", "APR")
	for i, r := range results {
		s := r.Summary
		mark := fmt.Sprintf("%d", i+1)
		if i == best {
			mark += "*"
		}
		table.Append(
			mark,
			num(r.Position.MinPrice),
			num(r.Position.MaxPrice),
			fmt.Sprintf("%.1f", s.AvgActiveLiquidityPct),
			num(s.TotalFeeValue),
			fmt.Sprintf("$%.2f", s.TotalFeeUSD),
			num(s.TotalUnboundedFeeValue),
			num(s.FinalTokenRatioReturn),
			fmt.Sprintf("%.2f%%", s.FeeAPR),
		)
	}
	table.Render()
	fmt.Fprintln(c.out, "  * = mejor Fee APR | TR = valor con ratio de tokens ajustado")
	fmt.Fprintln(c.out)
}

// --- helpers ---

// num formatea con precisión adaptada a la magnitud (precios de 1e-12 a 1e12).
func num(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Sprintf("%v", v)
	case v == 0:
		return "0"
	case math.Abs(v) >= 1e9 || math.Abs(v) < 1e-4:
		return fmt.Sprintf("%.4e", v)
	case math.Abs(v) >= 100:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.6f", v)
	}
}

func unixLabel(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04")
}

// shortID abrevia direcciones 0x… para la cabecera.
func shortID(id string) string {
	if len(id) <= 14 || !strings.HasPrefix(id, "0x") {
		return id
	}
	return id[:8] + "…" + id[len(id)-4:]
}
