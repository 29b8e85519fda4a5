package veld

// Package veld provides:
//
// - Composable, type-safe validation of decoded JSON/YAML values via Schema[T]
// - A stable error model via Issues (structured paths, codes, messages)
// - JSON Schema projection for every schema (JSONSchema)
// - Error formatters for humans and UIs (Prettify, Flatten, Treeify)
//
// Design policy:
// - Keep only public APIs in the root package; schema builders live under dsl/.
// - Parse never panics; every failure is an Issues value.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := dsl.Object().
//		Field("id", dsl.String().UUID()).
//		Field("email", dsl.String().Email()).
//		Strict().
//		MustBuild()
//
//	v, err := veld.ParseJSON(ctx, user, data)
//	if err != nil {
//		fmt.Println(veld.Prettify(err))
//	}
