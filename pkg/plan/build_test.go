package plan

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iac-reconciler/state-refactor/pkg/addrs"
	"github.com/iac-reconciler/state-refactor/pkg/directive"
)

func TestBuildOpOrdering(t *testing.T) {
	corr := &Correspondence{
		Creates:  []addrs.Address{addrs.MustParse("t.create")},
		Destroys: []addrs.Address{addrs.MustParse("t.doomed")},
		Bindings: []Binding{{To: addrs.MustParse("t.imported"), ID: "x"}},
		Pairs: []Pair{
			{Prior: addrs.MustParse("t.same"), Desired: addrs.MustParse("t.same")},
			{Prior: addrs.MustParse("t.old"), Desired: addrs.MustParse("t.new")},
		},
		Removals: []Removal{{Addr: addrs.MustParse("t.forgotten"), Destroy: false}},
	}

	p := Build(corr)

	want := []Op{
		RemoveOp{Addr: addrs.MustParse("t.forgotten"), Destroy: false},
		MoveOp{From: addrs.MustParse("t.old"), To: addrs.MustParse("t.new")},
		BindOp{To: addrs.MustParse("t.imported"), ID: "x"},
		DestroyOp{Addr: addrs.MustParse("t.doomed")},
		CreateOp{Addr: addrs.MustParse("t.create")},
	}
	if diff := cmp.Diff(want, p.Ops); diff != "" {
		t.Errorf("wrong ops (-want +got):\n%s", diff)
	}
}

func TestBuildIdentityPairsEmitNothing(t *testing.T) {
	corr := &Correspondence{
		Pairs: []Pair{{Prior: addrs.MustParse("t.same"), Desired: addrs.MustParse("t.same")}},
	}
	p := Build(corr)
	if len(p.Ops) != 0 {
		t.Errorf("got ops %v, want none", p.Ops)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	prior := graphOf(
		"aws_instance.a", "aws_instance.b", "aws_instance.c",
		"aws_s3_bucket.old[1]", "aws_s3_bucket.old[0]",
	)
	desired := graphOf(
		"aws_instance.a", "aws_instance.z",
		`aws_s3_bucket.new["one"]`, `aws_s3_bucket.new["zero"]`,
	)
	dirs := []directive.Directive{
		moved("aws_s3_bucket.old[0]", `aws_s3_bucket.new["zero"]`),
		moved("aws_s3_bucket.old[1]", `aws_s3_bucket.new["one"]`),
		directive.Removed{From: addrs.MustParse("aws_instance.b"), Destroy: false},
	}

	run := func() []Op {
		vs := validated(t, dirs...)
		corr, diags := Match(prior, desired, vs)
		if diags.HasErrors() {
			t.Fatalf("unexpected diagnostics: %v", diags.Err())
		}
		return Build(corr).Ops
	}

	first := run()
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, run()); diff != "" {
			t.Fatalf("plan differs between runs (-first +again):\n%s", diff)
		}
	}
}

func TestBuildCountToForEachScenario(t *testing.T) {
	prior := graphOf("aws_s3_bucket.buckets[0]", "aws_s3_bucket.buckets[1]", "aws_s3_bucket.buckets[2]")
	desired := graphOf(
		`aws_s3_bucket.buckets["one"]`,
		`aws_s3_bucket.buckets["two"]`,
		`aws_s3_bucket.buckets["three"]`,
	)
	vs := validated(t,
		moved("aws_s3_bucket.buckets[0]", `aws_s3_bucket.buckets["one"]`),
		moved("aws_s3_bucket.buckets[1]", `aws_s3_bucket.buckets["two"]`),
		moved("aws_s3_bucket.buckets[2]", `aws_s3_bucket.buckets["three"]`),
	)

	corr, diags := Match(prior, desired, vs)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}
	p := Build(corr)

	summary := Summarize(p)
	want := Summary{Moves: 3, Total: 3}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("wrong summary (-want +got):\n%s", diff)
	}
}

func TestBuildImportScenario(t *testing.T) {
	prior := graphOf()
	desired := graphOf("aws_s3_bucket.a")
	vs := validated(t, directive.Import{To: addrs.MustParse("aws_s3_bucket.a"), ID: "x"})

	corr, diags := Match(prior, desired, vs)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}
	p := Build(corr)

	want := []Op{BindOp{To: addrs.MustParse("aws_s3_bucket.a"), ID: "x"}}
	if diff := cmp.Diff(want, p.Ops); diff != "" {
		t.Errorf("wrong ops (-want +got):\n%s", diff)
	}
}

func TestBuildRemovedWithoutDestroyScenario(t *testing.T) {
	prior := graphOf("aws_instance.a")
	desired := graphOf()
	vs := validated(t, directive.Removed{From: addrs.MustParse("aws_instance.a"), Destroy: false})

	corr, diags := Match(prior, desired, vs)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}
	p := Build(corr)

	want := []Op{RemoveOp{Addr: addrs.MustParse("aws_instance.a"), Destroy: false}}
	if diff := cmp.Diff(want, p.Ops); diff != "" {
		t.Errorf("wrong ops (-want +got):\n%s", diff)
	}
}

func TestSummarizeCounts(t *testing.T) {
	p := &Plan{Ops: []Op{
		RemoveOp{Addr: addrs.MustParse("t.a"), Destroy: true},
		MoveOp{From: addrs.MustParse("t.b"), To: addrs.MustParse("t.c")},
		MoveOp{From: addrs.MustParse("t.d"), To: addrs.MustParse("t.e")},
		BindOp{To: addrs.MustParse("t.f"), ID: "x"},
		DestroyOp{Addr: addrs.MustParse("t.g")},
		CreateOp{Addr: addrs.MustParse("t.h")},
	}}

	want := Summary{Moves: 2, Binds: 1, Removals: 1, Destroys: 1, Creates: 1, Total: 6}
	if diff := cmp.Diff(want, Summarize(p)); diff != "" {
		t.Errorf("wrong summary (-want +got):\n%s", diff)
	}
}
