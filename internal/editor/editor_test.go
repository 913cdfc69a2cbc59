package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stafflens/goalboard/internal/kpi"
	"github.com/stafflens/goalboard/internal/models"
)

// fakeAPI records calls and returns canned responses.
type fakeAPI struct {
	fetchGoals models.GoalSet
	fetchErr   error
	saveErr    error

	saveCalls []models.GoalSet
}

func (f *fakeAPI) FetchGoals(ctx context.Context) (models.GoalSet, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.fetchGoals.Clone(), nil
}

func (f *fakeAPI) SaveGoals(ctx context.Context, goals models.GoalSet) (models.GoalSet, error) {
	f.saveCalls = append(f.saveCalls, goals.Clone())
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return goals.Clone(), nil
}

func TestEditor_Load(t *testing.T) {
	t.Run("merges stored goals over defaults", func(t *testing.T) {
		api := &fakeAPI{fetchGoals: models.GoalSet{
			models.GoalRevenueYTD: 900000,
		}}
		ed := New(api, models.GoalSet{})

		ed.Load(context.Background())

		require.Equal(t, StateLoaded, ed.State())
		draft := ed.Draft()
		require.Equal(t, 900000.0, draft[models.GoalRevenueYTD])
		require.Equal(t, kpi.DefaultGoals()[models.GoalUnitsYTD], draft[models.GoalUnitsYTD])
		require.Len(t, draft, len(kpi.DefaultGoals()))
	})

	t.Run("fetch failure falls back to defaults", func(t *testing.T) {
		api := &fakeAPI{fetchErr: errors.New("connection refused")}
		ed := New(api, models.GoalSet{})

		ed.Load(context.Background())

		require.Equal(t, StateLoaded, ed.State())
		require.Equal(t, kpi.DefaultGoals(), ed.Draft())
		require.False(t, ed.Saved())
		require.Empty(t, ed.SaveError())
	})

	t.Run("reload clears a prior save outcome", func(t *testing.T) {
		api := &fakeAPI{fetchGoals: models.GoalSet{}}
		ed := New(api, models.GoalSet{})

		ed.Load(context.Background())
		require.NoError(t, ed.Submit(context.Background()))
		require.True(t, ed.Saved())

		ed.Load(context.Background())
		require.False(t, ed.Saved())
	})
}

func TestEditor_SetField(t *testing.T) {
	t.Run("before load returns error", func(t *testing.T) {
		ed := New(&fakeAPI{}, models.GoalSet{})

		err := ed.SetField(models.GoalRevenueYTD, "100")
		require.ErrorIs(t, err, ErrNotLoaded)
	})

	t.Run("sanitizes field input", func(t *testing.T) {
		ed := New(&fakeAPI{fetchGoals: models.GoalSet{}}, models.GoalSet{})
		ed.Load(context.Background())

		require.NoError(t, ed.SetField(models.GoalRevenueYTD, "$1,250,000.50"))
		require.Equal(t, 1250000.50, ed.Draft()[models.GoalRevenueYTD])

		require.NoError(t, ed.SetField(models.GoalUnitsYTD, "garbage"))
		require.Equal(t, 0.0, ed.Draft()[models.GoalUnitsYTD])
	})

	t.Run("clears prior save outcome", func(t *testing.T) {
		ed := New(&fakeAPI{fetchGoals: models.GoalSet{}}, models.GoalSet{})
		ed.Load(context.Background())

		require.NoError(t, ed.Submit(context.Background()))
		require.True(t, ed.Saved())

		require.NoError(t, ed.SetField(models.GoalRevenueYTD, "1"))
		require.False(t, ed.Saved())
	})
}

func TestEditor_Submit(t *testing.T) {
	t.Run("sends the full draft", func(t *testing.T) {
		api := &fakeAPI{fetchGoals: models.GoalSet{}}
		ed := New(api, models.GoalSet{})
		ed.Load(context.Background())

		require.NoError(t, ed.SetField(models.GoalRevenueYTD, "2000000"))
		require.NoError(t, ed.Submit(context.Background()))

		require.Len(t, api.saveCalls, 1)
		sent := api.saveCalls[0]
		require.Equal(t, 2000000.0, sent[models.GoalRevenueYTD])
		// Untouched fields ride along at their default values.
		require.Len(t, sent, len(kpi.DefaultGoals()))

		require.True(t, ed.Saved())
		require.Empty(t, ed.SaveError())
		require.Equal(t, StateLoaded, ed.State())
	})

	t.Run("failure retains draft and records message", func(t *testing.T) {
		api := &fakeAPI{
			fetchGoals: models.GoalSet{},
			saveErr:    errors.New("Forbidden"),
		}
		ed := New(api, models.GoalSet{})
		ed.Load(context.Background())

		require.NoError(t, ed.SetField(models.GoalGPYTD, "999"))
		err := ed.Submit(context.Background())
		require.Error(t, err)

		require.Equal(t, StateLoaded, ed.State())
		require.False(t, ed.Saved())
		require.Equal(t, "Forbidden", ed.SaveError())
		require.Equal(t, 999.0, ed.Draft()[models.GoalGPYTD])
	})

	t.Run("before load returns error", func(t *testing.T) {
		api := &fakeAPI{}
		ed := New(api, models.GoalSet{})

		require.ErrorIs(t, ed.Submit(context.Background()), ErrNotLoaded)
		require.Empty(t, api.saveCalls)
	})

	t.Run("resubmit after failure succeeds", func(t *testing.T) {
		api := &fakeAPI{
			fetchGoals: models.GoalSet{},
			saveErr:    errors.New("StorageError"),
		}
		ed := New(api, models.GoalSet{})
		ed.Load(context.Background())

		require.Error(t, ed.Submit(context.Background()))

		api.saveErr = nil
		require.NoError(t, ed.Submit(context.Background()))
		require.True(t, ed.Saved())
		require.Empty(t, ed.SaveError())
	})
}

func TestEditor_Gauges(t *testing.T) {
	api := &fakeAPI{fetchGoals: models.GoalSet{}}
	actuals := models.GoalSet{
		models.GoalRevenueQTD: 460000,
		models.GoalUnitsQTD:   300,
	}
	ed := New(api, actuals)
	ed.Load(context.Background())

	require.NoError(t, ed.SetField(models.GoalRevenueQTD, "500000"))
	require.NoError(t, ed.SetField(models.GoalUnitsQTD, "375"))

	byName := map[string]Gauge{}
	for _, g := range ed.Gauges() {
		byName[g.Name] = g
	}
	require.Len(t, byName, len(kpi.DefaultGoals()))

	rev := byName[models.GoalRevenueQTD]
	require.InDelta(t, 92.0, rev.Percent, 0.0001)
	require.True(t, rev.OnTrack)
	require.Equal(t, 460000.0, rev.Current)

	units := byName[models.GoalUnitsQTD]
	require.InDelta(t, 80.0, units.Percent, 0.0001)
	require.False(t, units.OnTrack)
}
