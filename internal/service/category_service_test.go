package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-tracker/internal/database"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/repository"
	"pgregory.net/rapid"
)

func ownedCat(id int64, ownerID int64, name string) models.Category {
	return models.Category{ID: id, OwnerID: &ownerID, Name: name}
}

func defaultCat(id int64, name string) models.Category {
	return models.Category{ID: id, Name: name}
}

func TestMergeEffective(t *testing.T) {
	t.Run("owned shadows default with same name", func(t *testing.T) {
		owned := []models.Category{ownedCat(10, 1, "Groceries")}
		defaults := []models.Category{defaultCat(1, "Groceries"), defaultCat(2, "Housing")}

		merged := mergeEffective(owned, defaults)
		require.Len(t, merged, 2)
		require.Equal(t, "Groceries", merged[0].Name)
		require.Equal(t, int64(10), merged[0].ID)
		require.Equal(t, "Housing", merged[1].Name)
	})

	t.Run("no owned categories yields all defaults", func(t *testing.T) {
		defaults := []models.Category{defaultCat(1, "Groceries"), defaultCat(2, "Housing")}
		merged := mergeEffective(nil, defaults)
		require.Len(t, merged, 2)
	})

	t.Run("result is sorted by name", func(t *testing.T) {
		owned := []models.Category{ownedCat(10, 1, "Zoo"), ownedCat(11, 1, "Art")}
		defaults := []models.Category{defaultCat(1, "Groceries")}

		merged := mergeEffective(owned, defaults)
		require.Equal(t, []string{"Art", "Groceries", "Zoo"},
			[]string{merged[0].Name, merged[1].Name, merged[2].Name})
	})

	t.Run("empty inputs give empty non-nil result", func(t *testing.T) {
		merged := mergeEffective(nil, nil)
		require.NotNil(t, merged)
		require.Empty(t, merged)
	})
}

func TestMergeEffectiveProperties(t *testing.T) {
	nameGen := rapid.SampledFrom([]string{
		"Groceries", "Housing", "Transport", "Clothing", "Savings", "Pets", "Books",
	})

	rapid.Check(t, func(t *rapid.T) {
		ownerID := int64(1)
		var nextID int64

		ownedNames := rapid.SliceOfNDistinct(nameGen, 0, 7, rapid.ID).Draw(t, "ownedNames")
		defaultNames := rapid.SliceOfNDistinct(nameGen, 0, 7, rapid.ID).Draw(t, "defaultNames")

		var owned, defaults []models.Category
		for _, name := range ownedNames {
			nextID++
			owned = append(owned, ownedCat(nextID, ownerID, name))
		}
		for _, name := range defaultNames {
			nextID++
			defaults = append(defaults, defaultCat(nextID, name))
		}

		merged := mergeEffective(owned, defaults)

		// No name appears twice.
		seen := make(map[string]bool)
		for _, c := range merged {
			if seen[c.Name] {
				t.Fatalf("duplicate name %q in merged result", c.Name)
			}
			seen[c.Name] = true
		}

		// Every owned category survives the merge untouched.
		for _, c := range owned {
			if !seen[c.Name] {
				t.Fatalf("owned category %q missing from merged result", c.Name)
			}
		}

		// A default appears exactly when its name is not owned.
		ownedSet := make(map[string]bool, len(owned))
		for _, c := range owned {
			ownedSet[c.Name] = true
		}
		for _, c := range defaults {
			if ownedSet[c.Name] {
				continue
			}
			if !seen[c.Name] {
				t.Fatalf("unshadowed default %q missing from merged result", c.Name)
			}
		}

		// Sorted by name.
		for i := 1; i < len(merged); i++ {
			if merged[i-1].Name > merged[i].Name {
				t.Fatalf("merged result not sorted: %q before %q", merged[i-1].Name, merged[i].Name)
			}
		}
	})
}

func newCategoryFixture(t *testing.T) (context.Context, *CategoryService, *repository.CategoryRepository, *models.User) {
	t.Helper()

	tx := database.TestTx(t)
	ctx := context.Background()

	users := repository.NewUserRepository(tx)
	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))

	categories := repository.NewCategoryRepository(tx)
	return ctx, NewCategoryService(categories), categories, user
}

func TestCategoryService_Create(t *testing.T) {
	ctx, svc, _, user := newCategoryFixture(t)

	t.Run("creates owned category", func(t *testing.T) {
		cat, err := svc.Create(ctx, user.ID, "Hobbies", "climbing")
		require.NoError(t, err)
		require.True(t, cat.OwnedBy(user.ID))
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		cat, err := svc.Create(ctx, user.ID, "  Pets  ", "")
		require.NoError(t, err)
		require.Equal(t, "Pets", cat.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, "   ", "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "name", vErr.Field)
	})

	t.Run("rejects duplicate owned name", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, "Hobbies", "again")
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("rejects default name as reserved", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, "Groceries", "")
		require.ErrorIs(t, err, ErrReservedName)
	})

	t.Run("shadowed default name reports duplicate, not reserved", func(t *testing.T) {
		groceries, err := svc.VisibleByID(ctx, user.ID, mustDefaultID(t, ctx, svc, user.ID, "Groceries"))
		require.NoError(t, err)

		_, err = svc.Edit(ctx, user.ID, groceries.ID, "", "my groceries")
		require.NoError(t, err)

		_, err = svc.Create(ctx, user.ID, "Groceries", "")
		require.ErrorIs(t, err, ErrDuplicateName)
	})
}

// mustDefaultID finds a default category's ID through the effective view.
func mustDefaultID(t *testing.T, ctx context.Context, svc *CategoryService, userID int64, name string) int64 {
	t.Helper()

	cats, err := svc.EffectiveCategories(ctx, userID)
	require.NoError(t, err)
	for _, c := range cats {
		if c.Name == name && c.IsDefault() {
			return c.ID
		}
	}
	t.Fatalf("default category %q not visible", name)
	return 0
}

func TestCategoryService_EffectiveCategories(t *testing.T) {
	ctx, svc, _, user := newCategoryFixture(t)

	before, err := svc.EffectiveCategories(ctx, user.ID)
	require.NoError(t, err)
	defaultCount := len(before)
	require.NotZero(t, defaultCount)

	t.Run("new owned category joins the view", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, "Hobbies", "")
		require.NoError(t, err)

		cats, err := svc.EffectiveCategories(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, cats, defaultCount+1)
	})

	t.Run("shadowing keeps the count stable", func(t *testing.T) {
		id := mustDefaultID(t, ctx, svc, user.ID, "Groceries")
		shadow, err := svc.Edit(ctx, user.ID, id, "", "shadowed")
		require.NoError(t, err)
		require.True(t, shadow.OwnedBy(user.ID))

		cats, err := svc.EffectiveCategories(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, cats, defaultCount+1)

		// The visible Groceries is now the owned copy.
		for _, c := range cats {
			if c.Name == "Groceries" {
				require.Equal(t, shadow.ID, c.ID)
				require.Equal(t, "shadowed", c.Description)
			}
		}
	})

}

func TestCategoryService_Edit(t *testing.T) {
	ctx, svc, categories, user := newCategoryFixture(t)

	t.Run("editing a default creates an owned shadow", func(t *testing.T) {
		id := mustDefaultID(t, ctx, svc, user.ID, "Entertainment")
		original, err := categories.GetByID(ctx, id)
		require.NoError(t, err)

		shadow, err := svc.Edit(ctx, user.ID, id, "ignored-name", "movies only")
		require.NoError(t, err)
		require.NotEqual(t, id, shadow.ID)
		require.Equal(t, "Entertainment", shadow.Name)
		require.Equal(t, "movies only", shadow.Description)

		// The default row is untouched.
		after, err := categories.GetByID(ctx, id)
		require.NoError(t, err)
		require.Nil(t, after.OwnerID)
		require.Equal(t, original.Description, after.Description)
	})

	t.Run("editing a shadowed default again is a duplicate", func(t *testing.T) {
		id := mustDefaultID(t, ctx, svc, user.ID, "Entertainment")
		_, err := svc.Edit(ctx, user.ID, id, "", "another copy")
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("owned category updates in place", func(t *testing.T) {
		cat, err := svc.Create(ctx, user.ID, "Hobbies", "old")
		require.NoError(t, err)

		updated, err := svc.Edit(ctx, user.ID, cat.ID, "Crafts", "new")
		require.NoError(t, err)
		require.Equal(t, cat.ID, updated.ID)
		require.Equal(t, "Crafts", updated.Name)
		require.Equal(t, "new", updated.Description)
	})

	t.Run("empty name keeps the current one", func(t *testing.T) {
		cat, err := svc.Create(ctx, user.ID, "Gifts", "old")
		require.NoError(t, err)

		updated, err := svc.Edit(ctx, user.ID, cat.ID, "", "new")
		require.NoError(t, err)
		require.Equal(t, "Gifts", updated.Name)
	})

	t.Run("rename onto an existing owned name is a duplicate", func(t *testing.T) {
		cat, err := svc.Create(ctx, user.ID, "Tools", "")
		require.NoError(t, err)

		_, err = svc.Edit(ctx, user.ID, cat.ID, "Crafts", "")
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.Edit(ctx, user.ID, 999999, "X", "")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCategoryService_Visibility(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	users := repository.NewUserRepository(tx)
	alice := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, alice))
	bob := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, bob))

	svc := NewCategoryService(repository.NewCategoryRepository(tx))

	cat, err := svc.Create(ctx, alice.ID, "Hobbies", "")
	require.NoError(t, err)

	t.Run("owner sees it", func(t *testing.T) {
		visible, err := svc.VisibleByID(ctx, alice.ID, cat.ID)
		require.NoError(t, err)
		require.Equal(t, cat.ID, visible.ID)
	})

	t.Run("another user does not", func(t *testing.T) {
		_, err := svc.VisibleByID(ctx, bob.ID, cat.ID)
		require.ErrorIs(t, err, ErrNotFound)

		_, err = svc.Edit(ctx, bob.ID, cat.ID, "Taken", "")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("defaults are visible to everyone", func(t *testing.T) {
		id := mustDefaultID(t, ctx, svc, bob.ID, "Groceries")
		visible, err := svc.VisibleByID(ctx, bob.ID, id)
		require.NoError(t, err)
		require.True(t, visible.IsDefault())
	})

	t.Run("bob shadowing does not affect alice", func(t *testing.T) {
		id := mustDefaultID(t, ctx, svc, bob.ID, "Groceries")
		_, err := svc.Edit(ctx, bob.ID, id, "", "bob's groceries")
		require.NoError(t, err)

		aliceCats, err := svc.EffectiveCategories(ctx, alice.ID)
		require.NoError(t, err)
		for _, c := range aliceCats {
			if c.Name == "Groceries" {
				require.True(t, c.IsDefault())
			}
		}
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx, svc, _, user := newCategoryFixture(t)

	t.Run("owner deletes their category", func(t *testing.T) {
		cat, err := svc.Create(ctx, user.ID, "Hobbies", "")
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, user.ID, cat.ID))

		_, err = svc.VisibleByID(ctx, user.ID, cat.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("defaults are not deletable", func(t *testing.T) {
		id := mustDefaultID(t, ctx, svc, user.ID, "Housing")
		err := svc.Delete(ctx, user.ID, id)
		require.ErrorIs(t, err, ErrPermission)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		err := svc.Delete(ctx, user.ID, 999999)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deleting a shadow restores the default view", func(t *testing.T) {
		id := mustDefaultID(t, ctx, svc, user.ID, "Savings")
		shadow, err := svc.Edit(ctx, user.ID, id, "", "mine")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, user.ID, shadow.ID))

		cats, err := svc.EffectiveCategories(ctx, user.ID)
		require.NoError(t, err)
		for _, c := range cats {
			if c.Name == "Savings" {
				require.True(t, c.IsDefault())
			}
		}
	})
}
