package animal

import "fmt"

// named carries the behavior every animal shares.
type named struct {
	Name string
}

func (n named) Introduce() string { return fmt.Sprintf("Hola, soy %s", n.Name) }
func (n named) Eat() string       { return fmt.Sprintf("%s está comiendo", n.Name) }
func (n named) Sleep() string     { return fmt.Sprintf("%s está durmiendo", n.Name) }

// Dog is a Pet and a Communicator.
type Dog struct{ named }

// NewDog returns a dog called name.
func NewDog(name string) Dog { return Dog{named{name}} }

func (d Dog) MakeSound() string { return fmt.Sprintf("%s dice: ¡Guau guau!", d.Name) }
func (d Dog) Feed() string      { return fmt.Sprintf("%s está comiendo croquetas", d.Name) }
func (d Dog) Move() string      { return fmt.Sprintf("%s está corriendo", d.Name) }
func (Dog) Communicate() string { return "woof woof" }

// Cat is a Pet and a Communicator.
type Cat struct{ named }

// NewCat returns a cat called name.
func NewCat(name string) Cat { return Cat{named{name}} }

func (c Cat) MakeSound() string { return fmt.Sprintf("%s dice: ¡Miau!", c.Name) }
func (c Cat) Feed() string      { return fmt.Sprintf("%s está comiendo pescado", c.Name) }
func (c Cat) Move() string      { return fmt.Sprintf("%s está saltando", c.Name) }
func (Cat) Communicate() string { return "meow meow" }

// Bird is a Pet that also flies.
type Bird struct{ named }

// NewBird returns a bird called name.
func NewBird(name string) Bird { return Bird{named{name}} }

func (b Bird) MakeSound() string { return fmt.Sprintf("%s dice: ¡Pío pío!", b.Name) }
func (b Bird) Feed() string      { return fmt.Sprintf("%s está comiendo semillas", b.Name) }
func (b Bird) Move() string      { return fmt.Sprintf("%s está volando", b.Name) }
func (b Bird) Fly() string       { return fmt.Sprintf("%s está volando", b.Name) }

// Fox only communicates.
type Fox struct{ named }

func (Fox) Communicate() string { return "ring-ding-ding-ding-dingeringeding" }

// Cow only communicates.
type Cow struct{ named }

func (Cow) Communicate() string { return "moo moo" }

// Duck flies, swims and quacks.
type Duck struct{ named }

// NewDuck returns a duck called name.
func NewDuck(name string) Duck { return Duck{named{name}} }

func (Duck) Communicate() string { return "quack quack" }
func (d Duck) Fly() string       { return fmt.Sprintf("%s vuela sobre el lago", d.Name) }
func (d Duck) Swim() string      { return fmt.Sprintf("%s está nadando", d.Name) }

// Eagle flies.
type Eagle struct{ named }

// NewEagle returns an eagle called name.
func NewEagle(name string) Eagle { return Eagle{named{name}} }

func (e Eagle) Fly() string { return fmt.Sprintf("%s vuela alto en el cielo", e.Name) }

// Penguin swims and walks. It does not fly, so it is not a Flyer.
type Penguin struct{ named }

// NewPenguin returns a penguin called name.
func NewPenguin(name string) Penguin { return Penguin{named{name}} }

func (p Penguin) Swim() string { return fmt.Sprintf("%s está nadando", p.Name) }
func (p Penguin) Walk() string { return fmt.Sprintf("%s está caminando sobre el hielo", p.Name) }
