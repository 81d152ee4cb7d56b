package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/rpad300/godmode-sub015/pkg/domain/interfaces"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"github.com/rpad300/godmode-sub015/pkg/repository/firestore"
	"github.com/rpad300/godmode-sub015/pkg/repository/memory"
)

func runProfileRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	const projectID = "test-project"
	const personID = types.PersonID("john-silva")

	t.Run("Get on missing person returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Profile().Get(ctx, projectID, personID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("Upsert then Get round-trips the profile", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		profile := model.NewProfile(personID, "John Silva")
		profile.ConfidenceLevel = types.ConfidenceMedium
		profile.Dimensions["communication-style"] = "Direct and concise, prefers written follow-ups."
		gt.NoError(t, repo.Profile().Upsert(ctx, projectID, profile)).Required()

		got, err := repo.Profile().Get(ctx, projectID, personID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.PersonName).Equal("John Silva")
		gt.Value(t, got.ConfidenceLevel).Equal(types.ConfidenceMedium)
		gt.Value(t, got.Dimensions["communication-style"]).Equal("Direct and concise, prefers written follow-ups.")
		gt.Bool(t, got.CreatedAt.IsZero()).False()
		gt.Bool(t, got.UpdatedAt.IsZero()).False()
	})

	t.Run("Upsert keeps CreatedAt and advances UpdatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Profile().Upsert(ctx, projectID, model.NewProfile(personID, "John Silva"))).Required()

		first, err := repo.Profile().Get(ctx, projectID, personID)
		gt.NoError(t, err).Required()

		time.Sleep(2 * time.Millisecond)

		first.Dimensions["decision-making"] = "Seeks data before committing to a direction."
		gt.NoError(t, repo.Profile().Upsert(ctx, projectID, first)).Required()

		second, err := repo.Profile().Get(ctx, projectID, personID)
		gt.NoError(t, err).Required()
		gt.Bool(t, second.CreatedAt.Equal(first.CreatedAt)).True()
		gt.Bool(t, second.UpdatedAt.After(first.UpdatedAt)).True()
		gt.Value(t, second.Dimensions["decision-making"]).Equal("Seeks data before committing to a direction.")
	})

	t.Run("mutating a retrieved profile does not affect the store", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		profile := model.NewProfile(personID, "John Silva")
		profile.Dimensions["leadership"] = "Leads by delegation."
		gt.NoError(t, repo.Profile().Upsert(ctx, projectID, profile)).Required()

		got, err := repo.Profile().Get(ctx, projectID, personID)
		gt.NoError(t, err).Required()
		got.Dimensions["leadership"] = "tampered"

		again, err := repo.Profile().Get(ctx, projectID, personID)
		gt.NoError(t, err).Required()
		gt.Value(t, again.Dimensions["leadership"]).Equal("Leads by delegation.")
	})

	t.Run("profiles are scoped per project", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Profile().Upsert(ctx, projectID, model.NewProfile(personID, "John Silva"))).Required()

		_, err := repo.Profile().Get(ctx, "other-project", personID)
		gt.Error(t, err)
	})
}

func TestMemoryProfileRepository(t *testing.T) {
	runProfileRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreProfileRepository(t *testing.T) {
	runProfileRepositoryTest(t, newFirestoreRepository)
}
