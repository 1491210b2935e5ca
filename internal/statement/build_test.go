package statement

import (
	"errors"
	"math/rand"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

func feb(d int) civil.Date {
	return civil.Date{Year: 2018, Month: 2, Day: d}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(d civil.Date, amount, balance, account string) model.Entry {
	return model.Entry{Date: d, Amount: dec(amount), Description: "d", Balance: dec(balance), Account: account}
}

func balances(tl *model.Timeline) []string {
	out := make([]string, len(tl.Days))
	for i, d := range tl.Days {
		out[i] = d.Balance.String()
	}
	return out
}

func TestBuild_DescendingSource(t *testing.T) {
	e1 := entry(feb(6), "1", "60", "acc 2")
	e2 := entry(feb(4), "2", "50", "acc 1")
	e3 := entry(feb(2), "3", "3", "acc 2")
	// Two entries on feb 1: the source is descending, so the balance of
	// record is that of the first one in file order (e4).
	e4 := entry(feb(1), "4", "120", "acc 1")
	e5 := entry(feb(1), "5", "100", "acc 1")

	got, err := Build([]model.Entry{e1, e2, e3, e4, e5}, model.Descending)
	require.NoError(t, err)
	require.Len(t, got, 2)

	acc1 := got["acc 1"]
	require.NotNil(t, acc1)
	assert.Equal(t, "acc 1", acc1.Account)
	assert.Equal(t, []model.Day{
		{Date: feb(1), Balance: dec("120"), Entries: []model.Entry{e5, e4}},
		{Date: feb(2), Balance: dec("120")},
		{Date: feb(3), Balance: dec("120")},
		{Date: feb(4), Balance: dec("50"), Entries: []model.Entry{e2}},
	}, acc1.Days)

	acc2 := got["acc 2"]
	require.NotNil(t, acc2)
	assert.Equal(t, feb(2), acc2.Start())
	assert.Equal(t, feb(6), acc2.End())
	assert.Equal(t, []string{"3", "3", "3", "3", "60"}, balances(acc2))
	assert.Equal(t, []model.Entry{e1}, acc2.Days[4].Entries)
}

func TestBuild_LastProcessedWins(t *testing.T) {
	first := entry(feb(1), "-10", "120", "A")
	second := entry(feb(1), "-20", "100", "A")

	got, err := Build([]model.Entry{first, second}, model.Ascending)
	require.NoError(t, err)

	bal, ok := got["A"].Balance(feb(1))
	require.True(t, ok)
	assert.True(t, bal.Equal(dec("100")))
	assert.Equal(t, []model.Entry{first, second}, got["A"].Days[0].Entries)
}

func TestBuild_CarryForward(t *testing.T) {
	got, err := Build([]model.Entry{
		entry(feb(1), "0", "100", "X"),
		entry(feb(4), "-50", "50", "X"),
	}, model.Ascending)
	require.NoError(t, err)

	tl := got["X"]
	assert.Equal(t, []string{"100", "100", "100", "50"}, balances(tl))
	assert.Empty(t, tl.Days[1].Entries)
	assert.Empty(t, tl.Days[2].Entries)
}

func TestBuild_SingleEntry(t *testing.T) {
	got, err := Build([]model.Entry{entry(feb(9), "1", "1", "solo")}, model.Descending)
	require.NoError(t, err)
	assert.Equal(t, 1, got["solo"].Len())
	assert.Equal(t, feb(9), got["solo"].Start())
	assert.Equal(t, feb(9), got["solo"].End())
}

func TestBuild_Empty(t *testing.T) {
	got, err := Build(nil, model.Ascending)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	in := []model.Entry{entry(feb(2), "1", "1", "A"), entry(feb(1), "1", "1", "A")}
	_, err := Build(in, model.Descending)
	require.NoError(t, err)
	assert.Equal(t, feb(2), in[0].Date)
}

func TestBuild_InconsistentOrder(t *testing.T) {
	in := []model.Entry{
		entry(feb(3), "1", "1", "A"),
		entry(feb(1), "1", "1", "B"),
		entry(feb(1), "1", "1", "A"),
	}
	_, err := Build(in, model.Ascending)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistentOrder))

	var oe *OrderError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "A", oe.Account)
	assert.Equal(t, 2, oe.Index)
	assert.Equal(t, feb(3), oe.Prev)
	assert.Equal(t, feb(1), oe.Got)
}

func TestBuild_InterleavedAccountsAreIndependent(t *testing.T) {
	// B goes back in time relative to A, which is fine: order is per account.
	in := []model.Entry{
		entry(feb(5), "1", "1", "A"),
		entry(feb(1), "1", "7", "B"),
		entry(feb(6), "1", "2", "A"),
		entry(feb(2), "1", "8", "B"),
	}
	got, err := Build(in, model.Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, balances(got["A"]))
	assert.Equal(t, []string{"7", "8"}, balances(got["B"]))
}

func TestBuildAll_MergesStreamsPerAccount(t *testing.T) {
	late := model.Stream{
		Source:  "feb-late.csv",
		Order:   model.Descending,
		Entries: []model.Entry{entry(feb(5), "-5", "95", "A"), entry(feb(4), "-5", "100", "A")},
	}
	early := model.Stream{
		Source:  "feb-early.csv",
		Order:   model.Ascending,
		Entries: []model.Entry{entry(feb(1), "0", "110", "A"), entry(feb(1), "0", "7", "B")},
	}

	got, err := BuildAll([]model.Stream{late, early})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, feb(1), got["A"].Start())
	assert.Equal(t, []string{"110", "110", "110", "100", "95"}, balances(got["A"]))
	assert.Equal(t, 1, got["B"].Len())
}

func TestBuildAll_ReportsSource(t *testing.T) {
	bad := model.Stream{
		Source:  "broken.csv",
		Order:   model.Ascending,
		Entries: []model.Entry{entry(feb(2), "1", "1", "A"), entry(feb(1), "1", "1", "A")},
	}
	_, err := BuildAll([]model.Stream{bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentOrder)
	assert.Contains(t, err.Error(), "broken.csv")
}

func TestSorted(t *testing.T) {
	got := Sorted(map[string]*model.Timeline{
		"zeta":  {Account: "zeta"},
		"alpha": {Account: "alpha"},
		"mid":   {Account: "mid"},
	})
	require.Len(t, got, 3)
	assert.Equal(t, "alpha", got[0].Account)
	assert.Equal(t, "mid", got[1].Account)
	assert.Equal(t, "zeta", got[2].Account)
}

func TestBuild_GapFreeAndCarryForwardProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	accounts := []string{"a", "b", "c"}

	for iter := 0; iter < 50; iter++ {
		var in []model.Entry
		day := map[string]civil.Date{}
		for _, a := range accounts {
			day[a] = feb(1).AddDays(rng.Intn(10))
		}
		for i := 0; i < 40; i++ {
			a := accounts[rng.Intn(len(accounts))]
			day[a] = day[a].AddDays(rng.Intn(4))
			bal := decimal.NewFromInt(int64(rng.Intn(1000)))
			in = append(in, model.Entry{Date: day[a], Amount: decimal.NewFromInt(-1), Balance: bal, Account: a})
		}

		got, err := Build(in, model.Ascending)
		require.NoError(t, err)

		for _, tl := range got {
			// Days form exactly the contiguous range [start, end].
			require.Equal(t, tl.End().DaysSince(tl.Start())+1, tl.Len())
			for i, d := range tl.Days {
				require.Equal(t, tl.Start().AddDays(i), d.Date)
			}

			// Days without entries carry the previous day's balance.
			for i := 1; i < tl.Len(); i++ {
				if len(tl.Days[i].Entries) == 0 {
					require.True(t, tl.Days[i].Balance.Equal(tl.Days[i-1].Balance))
				} else {
					last := tl.Days[i].Entries[len(tl.Days[i].Entries)-1]
					require.True(t, tl.Days[i].Balance.Equal(last.Balance))
				}
			}
		}
	}
}
