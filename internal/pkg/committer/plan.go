package committer

import "cloud.google.com/go/spanner"

// Plan collects mutations as groups. A group is written in a single commit;
// separate groups may be split across commits by Batches.
type Plan struct {
	groups [][]*spanner.Mutation
	size   int
}

func NewPlan() *Plan {
	return &Plan{}
}

// Add appends muts as one group, skipping nils. An all-nil call adds nothing.
func (p *Plan) Add(muts ...*spanner.Mutation) {
	group := make([]*spanner.Mutation, 0, len(muts))
	for _, m := range muts {
		if m != nil {
			group = append(group, m)
		}
	}
	if len(group) == 0 {
		return
	}
	p.groups = append(p.groups, group)
	p.size += len(group)
}

func (p *Plan) IsEmpty() bool {
	return p.size == 0
}

// Len is the total number of mutations across groups.
func (p *Plan) Len() int {
	return p.size
}

// Mutations flattens every group in insertion order.
func (p *Plan) Mutations() []*spanner.Mutation {
	out := make([]*spanner.Mutation, 0, p.size)
	for _, g := range p.groups {
		out = append(out, g...)
	}
	return out
}

// Batches packs groups in order into batches of at most limit mutations.
// A group larger than limit becomes a batch of its own. limit <= 0 yields a
// single batch.
func (p *Plan) Batches(limit int) [][]*spanner.Mutation {
	if p.IsEmpty() {
		return nil
	}
	if limit <= 0 {
		return [][]*spanner.Mutation{p.Mutations()}
	}

	var (
		out [][]*spanner.Mutation
		cur []*spanner.Mutation
	)
	for _, g := range p.groups {
		if len(cur) > 0 && len(cur)+len(g) > limit {
			out = append(out, cur)
			cur = nil
		}
		cur = append(cur, g...)
	}
	return append(out, cur)
}
