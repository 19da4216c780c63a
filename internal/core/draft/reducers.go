package draft

import "github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"

// Section reducers. Each one takes the current draft by value and returns a
// new draft with exactly one section replaced, so every edit is an
// independently testable transformation rather than an ad hoc merge.

func (d Draft) WithStory(s StorySection) Draft {
	d.Story = s
	return d
}

func (d Draft) WithLocation(l LocationSection) Draft {
	d.Location = l
	return d
}

func (d Draft) WithMainWitness(w WitnessSection) Draft {
	d.MainWitness = w
	return d
}

func (d Draft) WithSecondaryWitnesses(ws []WitnessSection) Draft {
	d.SecondaryWitnesses = append([]WitnessSection(nil), ws...)
	return d
}

func (d Draft) WithEntities(es []EntitySection) Draft {
	d.Entities = append([]EntitySection(nil), es...)
	return d
}

func (d Draft) WithEnvironment(e EnvironmentSection) Draft {
	d.Environment = e
	return d
}

func (d Draft) WithCredibility(c CredibilitySection) Draft {
	d.Credibility = c
	return d
}

func (d Draft) WithRights(r RightsSection) Draft {
	d.Rights = r
	return d
}

func (d Draft) WithProjection(p ProjectionSection) Draft {
	d.Projection = p
	return d
}

func (d Draft) WithMedia(m []MediaSection) Draft {
	d.Media = append([]MediaSection(nil), m...)
	return d
}

func (d Draft) WithKeyElements(elems []string) Draft {
	d.KeyElements = normalize.StringList(elems)
	return d
}

func (d Draft) WithPublishNow(v bool) Draft {
	d.PublishNow = v
	return d
}
