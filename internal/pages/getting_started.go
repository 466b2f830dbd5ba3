package pages

import (
	"github.com/flix/flixsite/internal/models"
	rt "github.com/flix/flixsite/internal/richtext"
)

const releasesURL = "https://github.com/flix/flix/releases"

// GettingStarted is the onboarding guide.
func GettingStarted() Page {
	return Page{
		Route: "/getting-started",
		Meta: models.PageMetadata{
			Title:       "Flix | Getting Started",
			Description: "Install Flix and run your first program.",
		},
		Heading: "Getting Started",
		Intro: rt.Group(
			rt.Para(
				rt.Text("Flix runs on any platform that supports the "),
				rt.Link("https://adoptopenjdk.net/", rt.Text("Java Virtual Machine")),
				rt.Text(". Installation is as simple as "),
				rt.Link(releasesURL, rt.Text("downloading and running a jar file")),
				rt.Text("."),
			),
			rt.Markdown("You can also try Flix online at [play.flix.dev](https://play.flix.dev/)."),

			rt.Heading(2, rt.Text("Up and Running")),
			rt.Columns(
				rt.OrderedList(
					rt.Item(
						rt.Text("Ensure that you have Java 12 or later installed. You can check your Java version with the command "),
						rt.Code("java -version"),
						rt.Text(". You should see something like "),
						rt.Code(`openjdk version "12.0.0"`),
						rt.Text("."),
					),
					rt.Item(
						rt.Text("Download "),
						rt.Outbound(releasesURL, rt.Text("flix.jar")),
						rt.Text(" from the GitHub releases page."),
					),
					rt.Item(
						rt.Text("Run the command "),
						rt.Code("java -jar flix.jar --version"),
						rt.Text(" to verify that you have the expected version of Flix."),
					),
					rt.Item(
						rt.Text("Run the command "),
						rt.Code("java -jar flix.jar"),
						rt.Text(" to start Flix in interactive mode with a read-eval-print loop."),
					),
					rt.Item(
						rt.Text("Enter any expression to have it evaluated, e.g. "),
						rt.Code("21 + 42"),
						rt.Text("."),
					),
				),
				rt.Card(rt.Image("/static/install.svg", "Installing and running flix.jar")),
			),

			rt.Heading(2, rt.Text("Next Steps: Using a File")),
			rt.Columns(
				rt.Card(rt.Image("/static/next-steps.svg", "Loading test.flix in interactive mode")),
				rt.OrderedList(
					rt.Item(
						rt.Text("Create the file "),
						rt.Code("test.flix"),
						rt.Text(" with the content:"),
						rt.CodeBlock("flix", "def main(): Unit = ()"),
					),
					rt.Item(
						rt.Text("Run the command "),
						rt.Code("java -jar flix.jar test.flix --interactive"),
						rt.Text(" to start Flix in interactive mode with the file loaded."),
					),
					rt.Item(
						rt.Text("Type "),
						rt.Code("main()"),
						rt.Text(" into the command prompt to run the main function."),
					),
					rt.Item(
						rt.Text("Type "),
						rt.Code(":w"),
						rt.Text(" to watch the file for changes. You can now edit "),
						rt.Code("test.flix"),
						rt.Text(" as much as you want. Every time you save, Flix will automatically reload the file, and print any errors."),
					),
				),
			),

			rt.Heading(2, rt.Text("Onwards: The Programming Flix Book")),
			rt.Para(
				rt.Text("The "),
				rt.Link("https://flix.dev/programming-flix", rt.Text("Programming Flix")),
				rt.Text(" book provides an in-depth introduction to programming in Flix."),
			),
		),
	}
}
