package account

import "testing"

func TestCanRegister(t *testing.T) {
	t.Parallel()

	if err := CanRegister(nil); err != nil {
		t.Fatalf("anonymous caller must be allowed: %v", err)
	}
	err := CanRegister(&Principal{ID: "u1", Role: "user"})
	requireErrCode(t, err, "already_authenticated")
}

func TestCanViewByEmail(t *testing.T) {
	t.Parallel()

	admin := &Principal{ID: "a1", Email: "admin@x.com", Role: "admin"}
	user := &Principal{ID: "u1", Email: "me@x.com", Role: "user"}

	if err := CanViewByEmail(admin, "anyone@x.com"); err != nil {
		t.Fatalf("admin may view anyone: %v", err)
	}
	if err := CanViewByEmail(user, "me@x.com"); err != nil {
		t.Fatalf("own email must be allowed: %v", err)
	}
	if err := CanViewByEmail(user, " ME@X.COM "); err != nil {
		t.Fatalf("own email match is case-insensitive: %v", err)
	}
	requireErrCode(t, CanViewByEmail(user, "other@x.com"), "forbidden")
	requireErrCode(t, CanViewByEmail(nil, "me@x.com"), "token_missing")
}

func TestCanSearch_ElevatedRolesOnly(t *testing.T) {
	t.Parallel()

	requireErrCode(t, CanSearch(nil), "token_missing")
	requireErrCode(t, CanSearch(&Principal{ID: "u1", Role: "user"}), "forbidden")

	if err := CanSearch(&Principal{ID: "m1", Role: "moderator"}); err != nil {
		t.Fatalf("moderator may search: %v", err)
	}
	if err := CanSearch(&Principal{ID: "a1", Role: "admin"}); err != nil {
		t.Fatalf("admin may search: %v", err)
	}

	// Unknown roles rank below user and are denied too.
	requireErrCode(t, CanSearch(&Principal{ID: "x", Role: "bogus"}), "forbidden")
}

func TestCanListAll_AnyAuthenticatedPrincipal(t *testing.T) {
	t.Parallel()

	requireErrCode(t, CanListAll(nil), "token_missing")
	if err := CanListAll(&Principal{ID: "u1", Role: "user"}); err != nil {
		t.Fatalf("any authenticated principal may list: %v", err)
	}
}
