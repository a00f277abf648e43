package memberstore

import (
	"sort"
	"sync"
	"testing"

	"github.com/mkovarik/kulturhub/internal/domain/models"
	"github.com/mkovarik/kulturhub/internal/testutil"
)

func TestNextMembershipNumber_StartsAtOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := store.NextMembershipNumber(ctx)
	if err != nil {
		t.Fatalf("NextMembershipNumber: %v", err)
	}
	if n != 1 {
		t.Errorf("first number: got %d, want 1", n)
	}
}

func TestNextMembershipNumber_ConcurrentDistinct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	const workers = 10

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		nums []int64
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := testutil.TestContext()
			defer cancel()

			n, err := store.NextMembershipNumber(ctx)
			if err != nil {
				t.Errorf("NextMembershipNumber: %v", err)
				return
			}
			mu.Lock()
			nums = append(nums, n)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	for i := 1; i < len(nums); i++ {
		if nums[i] == nums[i-1] {
			t.Fatalf("duplicate membership number %d", nums[i])
		}
	}
	if len(nums) == workers && nums[len(nums)-1] != int64(workers) {
		t.Errorf("highest number: got %d, want %d", nums[len(nums)-1], workers)
	}
}

func TestCreate_AssignsNumberAndNormalizes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := &models.Member{
		FullName: "  Jana Novak  ",
		Email:    "Jana@Example.COM",
		Phone:    "+420 777 123 456",
	}
	if err := store.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if m.MembershipNumber == 0 {
		t.Error("membership number was not assigned")
	}
	got, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FullName != "Jana Novak" {
		t.Errorf("full name: got %q", got.FullName)
	}
	if got.Email != "jana@example.com" {
		t.Errorf("email: got %q", got.Email)
	}
	if got.Phone != "+420777123456" {
		t.Errorf("phone: got %q", got.Phone)
	}
}

func TestExistsByEmailAndPhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMember(ctx, 7, "Petr Svoboda", "petr@example.com", "+420111222333")

	ok, err := store.ExistsByEmail(ctx, "PETR@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail: %v", err)
	}
	if !ok {
		t.Error("expected email match after normalization")
	}

	ok, err = store.ExistsByPhone(ctx, "+420 111 222 333")
	if err != nil {
		t.Fatalf("ExistsByPhone: %v", err)
	}
	if !ok {
		t.Error("expected phone match after normalization")
	}

	ok, err = store.ExistsByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail: %v", err)
	}
	if ok {
		t.Error("unexpected match for unknown email")
	}
}

func TestList_SortsNewestNumberFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMember(ctx, 1, "First", "first@example.com", "1")
	fx.CreateMember(ctx, 3, "Third", "third@example.com", "3")
	fx.CreateMember(ctx, 2, "Second", "second@example.com", "2")

	members, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("got %d members, want 3", len(members))
	}
	if members[0].MembershipNumber != 3 || members[2].MembershipNumber != 1 {
		t.Errorf("unexpected order: %d, %d, %d",
			members[0].MembershipNumber, members[1].MembershipNumber, members[2].MembershipNumber)
	}
}
