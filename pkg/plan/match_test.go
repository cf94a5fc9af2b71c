package plan

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
	"github.com/iac-reconciler/state-refactor/pkg/diag"
	"github.com/iac-reconciler/state-refactor/pkg/directive"
	"github.com/iac-reconciler/state-refactor/pkg/state"
)

func graphOf(addresses ...string) *state.Graph {
	g := state.NewGraph()
	for _, a := range addresses {
		g.Add(state.Resource{Address: addrs.MustParse(a), Provider: "aws"})
	}
	return g
}

func validated(t *testing.T, dirs ...directive.Directive) *directive.ValidatedSet {
	t.Helper()
	vs, diags := directive.Validate(dirs)
	if diags.HasErrors() {
		t.Fatalf("directive validation failed: %v", diags.Err())
	}
	return vs
}

func moved(from, to string) directive.Moved {
	return directive.Moved{From: addrs.MustParse(from), To: addrs.MustParse(to)}
}

func TestMatchCollapsesMovedChains(t *testing.T) {
	prior := graphOf("aws_instance.a")
	desired := graphOf("aws_instance.c")
	vs := validated(t,
		moved("aws_instance.a", "aws_instance.b"),
		moved("aws_instance.b", "aws_instance.c"),
	)

	corr, diags := Match(prior, desired, vs)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}

	want := []Pair{{Prior: addrs.MustParse("aws_instance.a"), Desired: addrs.MustParse("aws_instance.c")}}
	if diff := cmp.Diff(want, corr.Pairs); diff != "" {
		t.Errorf("wrong pairs (-want +got):\n%s", diff)
	}
	if len(corr.Creates) != 0 || len(corr.Destroys) != 0 {
		t.Errorf("got %d creates and %d destroys, want none", len(corr.Creates), len(corr.Destroys))
	}
}

func TestMatchDanglingMoveIsWarning(t *testing.T) {
	prior := graphOf("aws_instance.a")
	desired := graphOf()
	vs := validated(t, moved("aws_instance.a", "aws_instance.b"))

	corr, diags := Match(prior, desired, vs)
	if diags.HasErrors() {
		t.Fatalf("dangling move must not be fatal: %v", diags.Err())
	}
	if len(diags.Warnings()) != 1 || diags[0].Code != diag.DanglingMove {
		t.Fatalf("got diagnostics %v, want one DanglingMove warning", diags)
	}
	// The hop is a no-op; the source falls through to destroy.
	if len(corr.Destroys) != 1 || corr.Destroys[0].String() != "aws_instance.a" {
		t.Errorf("got destroys %v, want [aws_instance.a]", corr.Destroys)
	}
}

func TestMatchDanglingChainLandsOnEarlierHop(t *testing.T) {
	prior := graphOf("aws_instance.a")
	desired := graphOf("aws_instance.b")
	vs := validated(t,
		moved("aws_instance.a", "aws_instance.b"),
		moved("aws_instance.b", "aws_instance.c"),
	)

	corr, diags := Match(prior, desired, vs)
	if diags.HasErrors() {
		t.Fatalf("unexpected fatal diagnostics: %v", diags.Err())
	}
	if !hasCode(diags, diag.DanglingMove) {
		t.Errorf("diagnostics %v missing DanglingMove warning", diags)
	}
	want := []Pair{{Prior: addrs.MustParse("aws_instance.a"), Desired: addrs.MustParse("aws_instance.b")}}
	if diff := cmp.Diff(want, corr.Pairs); diff != "" {
		t.Errorf("wrong pairs (-want +got):\n%s", diff)
	}
}

func TestMatchIndexAsymmetry(t *testing.T) {
	t.Run("adding an index auto-matches", func(t *testing.T) {
		prior := graphOf("aws_instance.web")
		desired := graphOf("aws_instance.web[0]")

		corr, diags := Match(prior, desired, validated(t))
		if diags.HasErrors() {
			t.Fatalf("unexpected diagnostics: %v", diags.Err())
		}
		want := []Pair{{Prior: addrs.MustParse("aws_instance.web"), Desired: addrs.MustParse("aws_instance.web[0]")}}
		if diff := cmp.Diff(want, corr.Pairs); diff != "" {
			t.Errorf("wrong pairs (-want +got):\n%s", diff)
		}
	})

	t.Run("removing an index never auto-matches", func(t *testing.T) {
		prior := graphOf("aws_instance.web[0]")
		desired := graphOf("aws_instance.web")

		corr, diags := Match(prior, desired, validated(t))
		if diags.HasErrors() {
			t.Fatalf("unexpected diagnostics: %v", diags.Err())
		}
		if len(corr.Pairs) != 0 {
			t.Errorf("got pairs %v, want none", corr.Pairs)
		}
		if len(corr.Destroys) != 1 || len(corr.Creates) != 1 {
			t.Errorf("got %d destroys and %d creates, want 1 and 1", len(corr.Destroys), len(corr.Creates))
		}
	})

	t.Run("explicit move covers index removal", func(t *testing.T) {
		prior := graphOf("aws_instance.web[0]")
		desired := graphOf("aws_instance.web")

		corr, diags := Match(prior, desired, validated(t, moved("aws_instance.web[0]", "aws_instance.web")))
		if diags.HasErrors() {
			t.Fatalf("unexpected diagnostics: %v", diags.Err())
		}
		want := []Pair{{Prior: addrs.MustParse("aws_instance.web[0]"), Desired: addrs.MustParse("aws_instance.web")}}
		if diff := cmp.Diff(want, corr.Pairs); diff != "" {
			t.Errorf("wrong pairs (-want +got):\n%s", diff)
		}
	})
}

func TestMatchExplicitMoveBeatsIdentity(t *testing.T) {
	// aws_instance.a exists in both graphs, but an explicit move sends it
	// elsewhere; the desired aws_instance.a must become a create.
	prior := graphOf("aws_instance.a")
	desired := graphOf("aws_instance.a", "aws_instance.c")
	vs := validated(t, moved("aws_instance.a", "aws_instance.c"))

	corr, diags := Match(prior, desired, vs)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}
	wantPairs := []Pair{{Prior: addrs.MustParse("aws_instance.a"), Desired: addrs.MustParse("aws_instance.c")}}
	if diff := cmp.Diff(wantPairs, corr.Pairs); diff != "" {
		t.Errorf("wrong pairs (-want +got):\n%s", diff)
	}
	wantCreates := []addrs.Address{addrs.MustParse("aws_instance.a")}
	if diff := cmp.Diff(wantCreates, corr.Creates); diff != "" {
		t.Errorf("wrong creates (-want +got):\n%s", diff)
	}
}

func TestMatchRemovedCoversAllInstances(t *testing.T) {
	prior := graphOf("aws_instance.a[0]", "aws_instance.a[1]", "aws_instance.b")
	desired := graphOf("aws_instance.b")
	vs := validated(t, directive.Removed{From: addrs.MustParse("aws_instance.a"), Destroy: false})

	corr, diags := Match(prior, desired, vs)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}
	want := []Removal{
		{Addr: addrs.MustParse("aws_instance.a[0]"), Destroy: false},
		{Addr: addrs.MustParse("aws_instance.a[1]"), Destroy: false},
	}
	if diff := cmp.Diff(want, corr.Removals); diff != "" {
		t.Errorf("wrong removals (-want +got):\n%s", diff)
	}
	if len(corr.Destroys) != 0 {
		t.Errorf("got destroys %v, want none", corr.Destroys)
	}
}

func TestMatchImportBinding(t *testing.T) {
	prior := graphOf()
	desired := graphOf("aws_s3_bucket.imported")
	vs := validated(t, directive.Import{To: addrs.MustParse("aws_s3_bucket.imported"), ID: "bucket-1234"})

	corr, diags := Match(prior, desired, vs)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}
	want := []Binding{{To: addrs.MustParse("aws_s3_bucket.imported"), ID: "bucket-1234"}}
	if diff := cmp.Diff(want, corr.Bindings); diff != "" {
		t.Errorf("wrong bindings (-want +got):\n%s", diff)
	}
	if len(corr.Creates) != 0 || len(corr.Destroys) != 0 {
		t.Errorf("got %d creates and %d destroys, want none", len(corr.Creates), len(corr.Destroys))
	}
}

func TestMatchResidue(t *testing.T) {
	prior := graphOf("aws_instance.old", "aws_instance.kept")
	desired := graphOf("aws_instance.kept", "aws_instance.new")

	corr, diags := Match(prior, desired, validated(t))
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}
	wantPairs := []Pair{{Prior: addrs.MustParse("aws_instance.kept"), Desired: addrs.MustParse("aws_instance.kept")}}
	if diff := cmp.Diff(wantPairs, corr.Pairs); diff != "" {
		t.Errorf("wrong pairs (-want +got):\n%s", diff)
	}
	if len(corr.Destroys) != 1 || corr.Destroys[0].String() != "aws_instance.old" {
		t.Errorf("got destroys %v, want [aws_instance.old]", corr.Destroys)
	}
	if len(corr.Creates) != 1 || corr.Creates[0].String() != "aws_instance.new" {
		t.Errorf("got creates %v, want [aws_instance.new]", corr.Creates)
	}
}

func hasCode(diags diag.Diagnostics, code diag.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}
