// Package rosetta provides:
//
// - Bidirectional mapping between JSON documents and typed Go values from a single mapping function
// - Converters for scalars, arrays, dictionaries and nested mapped objects
// - A diagnostics Log with root-relative key paths, severities and localized messages
// - Atomic decoding: a failed decode never leaves a partially written target
//
// Design policy:
// - One MapJSON method (or MapFunc) describes both directions; Session.Decoding tells them apart.
// - Required fields fail the mapping; Optional fields degrade to warnings.
// - Codecs that turn bytes into trees live under source/ and can be swapped per call or globally.
// - Extra converters live under codec/, reusable validators under rules/.
//
// Typical usage:
//
//	type Person struct {
//		Name string
//		Age  *int
//	}
//
//	func (p *Person) MapJSON(s *rosetta.Session) {
//		rosetta.Required(s.Key("name"), &p.Name, rosetta.String)
//		rosetta.Optional(s.Key("age"), &p.Age, rosetta.Int, rules.Between(0, 150))
//	}
//
//	p, err := rosetta.Decode[Person](data)
//	out, err := rosetta.Encode(p)
//
// Failures are reported as *MappingError, which carries the Log:
//
//	if me, ok := rosetta.AsMappingError(err); ok {
//		for _, r := range me.Log.Errors() {
//			fmt.Println(r)
//		}
//	}
package rosetta
