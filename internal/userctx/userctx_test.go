package userctx

import (
	"errors"
	"os/user"
	"testing"
)

func stubLookup(t *testing.T, u *user.User, err error) {
	t.Helper()
	orig := lookupFunc
	lookupFunc = func(string) (*user.User, error) { return u, err }
	t.Cleanup(func() { lookupFunc = orig })
}

func stubCurrent(t *testing.T, u *user.User, err error) {
	t.Helper()
	orig := currentFunc
	currentFunc = func() (*user.User, error) { return u, err }
	t.Cleanup(func() { currentFunc = orig })
}

func stubHomedir(t *testing.T, home string, err error) {
	t.Helper()
	orig := homedirFunc
	homedirFunc = func() (string, error) { return home, err }
	t.Cleanup(func() { homedirFunc = orig })
}

func TestResolveNamedUser(t *testing.T) {
	stubLookup(t, &user.User{Username: "wsadmin", Uid: "1005", Gid: "1005", HomeDir: "/home/wsadmin"}, nil)

	got, err := Resolve("wsadmin")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	want := User{Name: "wsadmin", UID: 1005, GID: 1005, Home: "/home/wsadmin"}
	if got != want {
		t.Fatalf("Resolve = %+v, want %+v", got, want)
	}
	if got.Privileged() {
		t.Fatal("uid 1005 must not be privileged")
	}
}

func TestResolveCurrentUser(t *testing.T) {
	stubCurrent(t, &user.User{Username: "root", Uid: "0", Gid: "0", HomeDir: "/root"}, nil)

	got, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.Name != "root" || !got.Privileged() {
		t.Fatalf("unexpected user %+v", got)
	}
}

func TestResolveLookupFailure(t *testing.T) {
	stubLookup(t, nil, user.UnknownUserError("ghost"))

	_, err := Resolve("ghost")
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

func TestResolveBadUID(t *testing.T) {
	stubLookup(t, &user.User{Username: "odd", Uid: "not-a-number", Gid: "0", HomeDir: "/home/odd"}, nil)

	_, err := Resolve("odd")
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

func TestResolveHomeFallbackForCurrentUser(t *testing.T) {
	stubCurrent(t, &user.User{Username: "joe", Uid: "1000", Gid: "100", HomeDir: ""}, nil)
	stubHomedir(t, "/home/joe", nil)

	got, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.Home != "/home/joe" {
		t.Fatalf("expected homedir fallback, got %q", got.Home)
	}
}

func TestResolveNoHome(t *testing.T) {
	stubLookup(t, &user.User{Username: "svc", Uid: "990", Gid: "990", HomeDir: ""}, nil)

	_, err := Resolve("svc")
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}
