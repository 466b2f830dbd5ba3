package pages

import (
	"github.com/flix/flixsite/internal/catalog"
	"github.com/flix/flixsite/internal/models"
	rt "github.com/flix/flixsite/internal/richtext"
)

// Principles is the catalog of language design principles.
func Principles() Page {
	return Page{
		Route: "/principles",
		Meta: models.PageMetadata{
			Title:       "Flix | Design Principles",
			Description: "The principles that guide the design of the Flix programming language.",
		},
		Heading: "Design Principles",
		Intro: rt.Group(
			rt.Para(rt.Text("We think that a programming language should follow a principled design. " +
				"That is, when a design decision is made, there should be some rationale for why that decision was made. " +
				"By outlining some of the principles that influence Flix, we hope to keep ourselves honest and also to " +
				"communicate to you what kind of language Flix is.")),
			rt.Para(rt.Text("Many of these ideas and principles come from languages that have inspired Flix, " +
				"including Ada, Elm, Haskell, OCaml, Rust, and Scala.")),
		),
		Catalog: principles(),
		Layout:  catalog.LayoutColumns,
	}
}

func inProgress() rt.Node {
	return rt.Group(rt.Break(), rt.Badge("in progress"))
}

func principles() catalog.Catalog {
	return catalog.Catalog{
		{Name: "Simple is not easy", Content: rt.Group(
			rt.Text("We believe in Rich Hickey's creed: "),
			rt.Link("https://www.infoq.com/presentations/Simple-Made-Easy", rt.Text("simple is not easy")),
			rt.Text(". We prefer a language that gets things right to one that makes things easy. "+
				"Such a language might take longer to learn in the short run, but its simplicity pays off in the long run."),
		)},
		{Name: "Everything is an expression", Content: rt.Group(
			rt.Text("Flix is a functional language and embraces the idea that everything should be an expression. "+
				"Flix has no local variable declarations or if-then-else statements, instead it has let-bindings and "+
				"if-then-else expressions. However, Flix does not take this idea as far as the Scheme languages. "+
				"Flix still has declarations, namespaces, and so forth that are not expressions."),
		)},
		{Name: "Local type inference", Content: rt.Group(
			rt.Text("The Flix type system is based on "),
			rt.Link("https://en.wikipedia.org/wiki/Hindley%E2%80%93Milner_type_system", rt.Text("Hindley-Milner")),
			rt.Text(" which supports full type inference. As a design choice, we require all functions to be annotated "+
				"with their argument and return types. We believe that requiring type signatures has three distinct "+
				"advantages that outweigh the disadvantages."),
			rt.OrderedList(
				rt.Item(rt.Text("Type signatures are useful as documentation and to aid program understanding.")),
				rt.Item(rt.Text("Type signatures more accurately assign blame.")),
				rt.Item(rt.Text("Type signatures enable parallel type checking.")),
			),
			rt.Text("Of these, we think the former two are significantly more important than the latter."),
		)},
		{Name: "Uniform function call syntax", Content: rt.Group(
			rt.Text("Flix supports "),
			rt.Link("https://en.wikipedia.org/wiki/Uniform_Function_Call_Syntax", rt.Text("uniform function call syntax (UFCS)")),
			rt.Text(". In Flix, the syntax for function application is: "),
			rt.Code("f(a, b, c)"),
			rt.Text(`. UFCS enables an "object-oriented" style where we can write the same function call as `),
			rt.Code("a.f(b, c)"),
			rt.Text("."),
			rt.Break(),
			rt.Text("For example, the function call "),
			rt.Code("length(xs)"),
			rt.Text(" can also be written as "),
			rt.Code("xs.length()"),
			rt.Text(". UFCS is a purely syntactic mechanism and does not influence the semantics of a call."),
		)},
		{Name: "Keyword-based syntax", Content: rt.Group(
			rt.Text("The Flix syntax is inspired by Scala and Python. We believe that short key words make it easy to "+
				"visually identify the overall structure of a piece of code. Flix tries to use three letter keywords where "+
				"appropriate: "),
			rt.Code("def"), rt.Text(", "), rt.Code("let"), rt.Text(", "), rt.Code("law"), rt.Text(", "), rt.Code("rel"),
			rt.Text(", but not for commonly established concepts: "),
			rt.Code("if ... else"),
			rt.Text(" and "),
			rt.Code("match ... with"),
			rt.Text("."),
		)},
		{Name: "Consistent Syntax", Content: rt.Group(
			rt.Text("Flix aims to have consistent syntax. For example, a function application is written as "),
			rt.Code("f(a, b, c)"),
			rt.Text(". Similarly, a type application is written as "),
			rt.Code("f[a, b, c]"),
			rt.Text(" mirroring the syntax of the function application. In the same way, a function expression is written as "),
			rt.Code("x -> x + 1"),
			rt.Text(" and its type is written "),
			rt.Code("Int -> Int"),
			rt.Text("."),
		)},
		{Name: "Human-Readable Error Messages", Content: rt.Group(
			rt.Text("In the spirit of "),
			rt.Link("https://elm-lang.org/blog/compilers-as-assistants", rt.Text("Elm")),
			rt.Text(", Clang, and Rust, Flix aims to have human readable error messages. We believe compiler messages "+
				"should offer rich detail about the problem at hand, including potentially relevant information known to "+
				"the compiler, and suggestions for how to correct the problem."),
			inProgress(),
		)},
		{Name: "Private Visibility by Default", Content: rt.Group(
			rt.Text("In Flix, declarations are assigned the least visibility by default. That is, e.g. declarations "+
				"cannot be accessed outside their own namespace (or a sub-namespace). For a declaration to be globally "+
				"visible it must explicitly be declared as public. We believe this forces the programmer to make a choice "+
				"about whether some definition or data type should be considered internal (the default) or available to "+
				"other parts of the program."),
		)},
		{Name: "Illegal States should be Unrepresentable.", Content: rt.Group(
			rt.Text("We believe that a good design should aim to make illegal states unrepresentable. Ideally we "+
				"enforce most of these properties in the type system. For example, with algebraic data types we can "+
				"easily define a type "),
			rt.Code("Color"),
			rt.Text(" and that it has three variants "),
			rt.Code("Red"), rt.Text(", "), rt.Code("Green"), rt.Text(", and "), rt.Code("Blue"),
			rt.Text(". The type system ensures that nothing else is a color. In Flix, we would like to take this "+
				"further, and allow refinement on some types. For example, we could express that not only must some type "+
				"be an integer, but also that it must fall within a range, e.g. "),
			rt.Code("[0-99]"),
			rt.Text(". Checking such refinement types at compile-time is an open research problem, but in Flix we aim "+
				"to at least provide the means to express such invariants, and then to rely on run-time checks until the "+
				"theory matures more."),
			inProgress(),
		)},
		{Name: "Nothing is Executed Before Main", Content: rt.Group(
			rt.Text("In Flix the "), rt.Code("main"),
			rt.Text(" function is the entry point of the program. No other (user-defined) code is executed before "),
			rt.Code("main"),
			rt.Text(". This makes it easier to reason about startup behaviour, compared to say, Java where things such "+
				"as static initializers may be executed before entering "),
			rt.Code("main"),
			rt.Text("."),
		)},
		{Name: "Standard Library", Content: rt.Group(
			rt.Text("We believe it is important that a programming language provides a core library that has common "+
				"abstractions to provide better interoperability. Flix aims to provide a small core library with the most "+
				"common data types, e.g. "),
			rt.Code("Option"), rt.Text(", "), rt.Code("List"), rt.Text(", "), rt.Code("Set"), rt.Text(", and "), rt.Code("Map"),
			rt.Text(" along with their most common operations. On the other hand, we don't believe that a standard "+
				"library should be a kitchen-sink and provide everything."),
		)},
		{Name: "Declare and then Use", Content: rt.Group(
			rt.Text("Flix requires things to be declared before they can be used. Algebraic data types, functions, and "+
				"other programming elements must be declared before they can be used by other program parts. Declarations "+
				"make it easy to assign blame. We assume the declaration to be correct and then check any usage against "+
				"its specification. E.g. the cases of an algebraic data type or the arguments to a function."),
		)},
		{Name: "No Undefined Behaviour", Content: rt.Group(
			rt.Text("We value safety higher than performance. Unlike languages such as C and C++ we are willing to pay "+
				"(small) performance overheads if it improves the safety and robustness of programs. Two classical "+
				"examples of this are array bounds checks and garbage collection. In Flix we plan to support additional "+
				"safety mechanisms."),
			inProgress(),
		)},
		{Name: "No Global State", Content: rt.Group(
			rt.Text("In Flix there is no global state. This avoids a large class of problems related to "+
				"initialization, dependencies, and concurrency. A Flix programmer is of course free to construct some "+
				"state in the main function and pass this throughout the program, but there is no built-in mechanism to "+
				"declare a global variable. Of course a real system still has to deal with some global state since the "+
				"file system, network, etc. is all part of a larger global state."),
		)},
		{Name: "No Nulls", Content: rt.Group(
			rt.Text("Flix does not have a special "), rt.Code("null"),
			rt.Text(" value. The presence of null as a subtype of any type is now widely considered a mistake. The "+
				"inventor of null, Sir Tony Hoare, has famously called it his billion dollar mistake. Languages with "+
				"null, such as C#, Dart, Kotlin, Scala, etc. are rapidly scrambling to adopt mechanisms to ensure "+
				"non-nullness. In Flix, we adopt the standard solution to represent the absence of a value using the "),
			rt.Code("Option"),
			rt.Text(" type. This solution is simple to understand, works well, and guarantees the absence of dreaded "),
			rt.Code("NullPointerException"),
			rt.Text("s."),
		)},
		{Name: "No Implicit Coercions", Content: rt.Group(
			rt.Text("In Flix a value of one type is never coerced or converted into another type automatically. For example,"),
			rt.List(
				rt.Item(rt.Text("Only booleans may be used in an if-then-else expression.")),
				rt.Item(rt.Text("Integers are never truncated or promoted.")),
				rt.Item(rt.Text("Values are never coerced to strings.")),
			),
		)},
		{Name: "No Compiler Warnings, Only Compile-Time Errors", Content: rt.Group(
			rt.Text("The Flix compiler never emits warnings; only compile-time errors. The problem with warnings is that "+
				"they can be ignored or that people disagree on what warnings are important. For Flix our goal is that "+
				"anything that looks incorrect or troublesome should outright be rejected. In this we are inspired by "+
				"languages such as Rust where e.g. dead code is considered not as a warning, but a compile-time error."),
		)},
		{Name: "Dead and Unreachable Code is Rejected", Content: rt.Group(
			rt.Text("Flix aims to enforce that programs with dead and unreachable code are rejected, similarly to how "+
				"Rust rejects such code."),
			inProgress(),
		)},
		{Name: "Pattern Matches must be Exhaustive", Content: rt.Group(
			rt.Text("Flix enforces that a pattern match handles all cases of an algebraic data type. If a match is "+
				"non-exhaustive, the program is rejected."),
		)},
	}
}
