// Package dsl provides the schema builders: primitives (String, Number,
// Bool, Literal, Enum, Date, DateTime, Any), modifiers (Optional, Default,
// Nullable, Catch, Refine, Transform, Pipe, Preprocess), structural
// combinators (Array, Tuple, Record, MapOf, Set, Object) and algebraic
// combinators (Union, DiscriminatedUnion, Intersection, Custom, Lazy).
//
// Every builder produces a veld.Schema[T] that also implements
// veld.AnySchema, so schemas of different output types compose freely
// inside objects, tuples and unions.
//
//	user := dsl.Object().
//		Field("id", dsl.String().UUID()).
//		Field("name", dsl.String().Min(1)).
//		Field("age", dsl.Optional(dsl.Number().Int().NonNegative())).
//		Strict()
//
//	v, err := veld.ParseJSON(ctx, user.MustBuild(), data)
package dsl
