// Package animal holds the animal variants used by the polymorphism,
// open/closed and substitution katas. Every behavior is its own capability,
// and each animal implements only the ones it can honor: a Penguin has no Fly.
package animal

import "github.com/ainaplanass/exam/capability"

// Introducer can say who it is.
type Introducer interface {
	Introduce() string
}

// Sounder can produce a sound.
type Sounder interface {
	MakeSound() string
}

// Feeder can describe being fed.
type Feeder interface {
	Feed() string
}

// Mover can describe how it moves.
type Mover interface {
	Move() string
}

// Pet is the composed capability processed by the polymorphism kata.
type Pet interface {
	Introducer
	Sounder
	Feeder
	Mover
}

// Communicator can communicate in its own way.
type Communicator interface {
	Communicate() string
}

// Eater can eat. Every animal here is an Eater.
type Eater interface {
	Eat() string
}

// Sleeper can sleep.
type Sleeper interface {
	Sleep() string
}

// Flyer can fly. Only animals that actually fly implement it.
type Flyer interface {
	Fly() string
}

// Walker can walk.
type Walker interface {
	Walk() string
}

// Swimmer can swim.
type Swimmer interface {
	Swim() string
}

// Contracts returns the capability contracts defined by this package.
func Contracts() []capability.Contract {
	return []capability.Contract{
		capability.ContractFor[Introducer]("introducer", "Introduces itself by name"),
		capability.ContractFor[Sounder]("sounder", "Produces its characteristic sound"),
		capability.ContractFor[Feeder]("feeder", "Describes what it is fed"),
		capability.ContractFor[Mover]("mover", "Describes how it moves"),
		capability.ContractFor[Pet]("pet", "Introduces, sounds, feeds and moves"),
		capability.ContractFor[Communicator]("communicator", "Communicates in its own way"),
		capability.ContractFor[Eater]("eater", "Eats"),
		capability.ContractFor[Sleeper]("sleeper", "Sleeps"),
		capability.ContractFor[Flyer]("flyer", "Flies"),
		capability.ContractFor[Walker]("walker", "Walks"),
		capability.ContractFor[Swimmer]("swimmer", "Swims"),
	}
}

// Register adds the animal contracts and variants to reg.
func Register(reg *capability.Registry) error {
	return reg.Populate(Contracts(), map[string]any{
		"dog":     Dog{},
		"cat":     Cat{},
		"bird":    Bird{},
		"fox":     Fox{},
		"cow":     Cow{},
		"duck":    Duck{},
		"eagle":   Eagle{},
		"penguin": Penguin{},
	})
}

// Describe runs the four Pet operations in order.
func Describe(p Pet) []string {
	return []string{p.Introduce(), p.MakeSound(), p.Feed(), p.Move()}
}

// DescribeAll describes every pet. The loop never looks at which animal it holds.
func DescribeAll(pets []Pet) [][]string {
	out := make([][]string, 0, len(pets))
	for _, p := range pets {
		out = append(out, Describe(p))
	}
	return out
}

// Communicate lets c communicate.
func Communicate(c Communicator) string {
	return c.Communicate()
}

// CommunicateAll collects every communicator's message in order.
func CommunicateAll(cs []Communicator) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Communicate()
	}
	return out
}

// FeedAll makes every eater eat.
func FeedAll(es []Eater) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Eat()
	}
	return out
}

// FlyAll makes every flyer fly. Only Flyers can be passed in.
func FlyAll(fs []Flyer) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Fly()
	}
	return out
}
