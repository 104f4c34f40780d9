// Package seed provides helpers to create demo data. Everything is written
// through the service layer so cross references stay consistent.
package seed

import (
	"fmt"
	"strings"
	"sync/atomic"

	"socialnet/internal/models"
	"socialnet/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds service inputs populated with fake content.
type Factory struct {
	faker *gofakeit.Faker
	seq   atomic.Int64
}

// NewFactory creates a Factory. A zero seed picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// User returns a signup payload with a username unique to this factory.
func (f *Factory) User(overrides ...func(*service.CreateUserInput)) service.CreateUserInput {
	n := f.seq.Add(1)
	in := service.CreateUserInput{
		Username: fmt.Sprintf("%s%d", strings.ToLower(f.faker.Username()), n),
	}
	in.Email = fmt.Sprintf("%s@%s", in.Username, f.faker.DomainName())

	for _, override := range overrides {
		override(&in)
	}
	return in
}

// Thought returns a thought payload authored by user.
func (f *Factory) Thought(user *models.User, overrides ...func(*service.CreateThoughtInput)) service.CreateThoughtInput {
	in := service.CreateThoughtInput{
		ThoughtText: clip(f.faker.Sentence(f.faker.Number(4, 20))),
		Username:    user.Username,
		UserID:      user.ID,
	}
	for _, override := range overrides {
		override(&in)
	}
	return in
}

// Reaction returns a reaction payload written by user.
func (f *Factory) Reaction(user *models.User) service.AddReactionInput {
	return service.AddReactionInput{
		ReactionBody: clip(f.faker.Phrase()),
		Username:     user.Username,
	}
}

// Pick returns up to n distinct indexes in [0, size) excluding skip.
func (f *Factory) Pick(size, n, skip int) []int {
	candidates := make([]int, 0, size)
	for i := range size {
		if i != skip {
			candidates = append(candidates, i)
		}
	}
	f.faker.ShuffleInts(candidates)
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}

func clip(s string) string {
	r := []rune(s)
	if len(r) > models.MaxTextLength {
		return string(r[:models.MaxTextLength])
	}
	return s
}
