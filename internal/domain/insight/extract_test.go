package insight_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/qainsight/internal/domain/insight"
)

func mustExtractor(opts ...insight.Option) *insight.Extractor {
	e, err := insight.NewExtractor(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func TestExtract(t *testing.T) {
	Convey("Given a default extractor", t, func() {
		e := mustExtractor()

		Convey("When feedback names a strength and an improvement", func() {
			texts := []string{"Her writing was excellent and clear. She could improve on accuracy."}
			pos := e.Extract(texts, insight.Positive)
			neg := e.Extract(texts, insight.Negative)

			Convey("Then each polarity should yield its own clause", func() {
				So(pos.Items, ShouldResemble, []string{"Her writing was excellent and clear."})
				So(neg.Items, ShouldResemble, []string{"She could improve on accuracy."})
				So(pos.Polarity, ShouldEqual, insight.Positive)
				So(neg.Polarity, ShouldEqual, insight.Negative)
			})
		})

		Convey("When all feedback is missing", func() {
			pos := e.Extract(nil, insight.Positive)
			neg := e.Extract([]string{}, insight.Negative)

			Convey("Then both sets should be empty", func() {
				So(pos.Empty(), ShouldBeTrue)
				So(neg.Empty(), ShouldBeTrue)
			})
		})

		Convey("When the combined text is under ten characters", func() {
			set := e.Extract([]string{"  clear.", " "}, insight.Positive)

			Convey("Then nothing should be extracted regardless of content", func() {
				So(set.Empty(), ShouldBeTrue)
			})
		})

		Convey("When texts come from several records", func() {
			set := e.Extract([]string{"The tone was warm", "and very supportive."}, insight.Positive)

			Convey("Then they should be joined with a single space", func() {
				So(set.Items, ShouldResemble, []string{"The tone was warm and very supportive."})
			})
		})

		Convey("When the same clause repeats", func() {
			text := "The reply was excellent and clear. The reply was excellent and clear."
			set := e.Extract([]string{text}, insight.Positive)

			Convey("Then it should appear once", func() {
				So(set.Items, ShouldResemble, []string{"The reply was excellent and clear."})
			})
		})

		Convey("When a family matches more than twice", func() {
			text := "Excellent work. Great job. The reply was excellent and clear. Strong and clear summary at the end."
			set := e.Extract([]string{text}, insight.Positive)

			Convey("Then only its first two clauses should be considered", func() {
				So(set.Items, ShouldResemble, []string{"The reply was excellent and clear."})
			})
		})

		Convey("When clauses fall outside the length bounds", func() {
			long := "The agent was " + strings.Repeat("very ", 40) + "professional."
			set := e.Extract([]string{"Clear reply. " + long}, insight.Positive)

			Convey("Then they should be rejected", func() {
				So(set.Empty(), ShouldBeTrue)
			})
		})

		Convey("When matches span several families", func() {
			text := "The answer was easy to follow for the customer. The greeting was excellent and on time. " +
				"A strong summary of the order status. Very clear description of next steps."
			set := e.Extract([]string{text}, insight.Positive)

			Convey("Then earlier families should come first and the cap should hold", func() {
				So(set.Items, ShouldResemble, []string{
					"The greeting was excellent and on time.",
					"A strong summary of the order status.",
					"The answer was easy to follow for the customer.",
				})
			})
		})

		Convey("When a clause has no terminator", func() {
			set := e.Extract([]string{"The agent was helpful throughout the whole chat"}, insight.Positive)

			Convey("Then it should not be returned", func() {
				So(set.Empty(), ShouldBeTrue)
			})
		})

		Convey("When matching is case-insensitive", func() {
			set := e.Extract([]string{"THE AGENT NEEDS TO CONFIRM THE ADDRESS!"}, insight.Negative)

			Convey("Then upper-case text should match", func() {
				So(set.Items, ShouldResemble, []string{"THE AGENT NEEDS TO CONFIRM THE ADDRESS!"})
			})
		})
	})
}

func TestExtractProperties(t *testing.T) {
	Convey("Given a corpus of mixed feedback", t, func() {
		corpus := []string{
			"Response was clear and professional. Agent should focus on the refund policy. Unclear next steps were given?",
			"Great empathy overall! The agent was really helpful with the late order. Consider offering a discount code.",
			"Missing order number in the reply. Well-structured answer with friendly tone. Needs to verify identity first.",
			"Thorough explanation of shipping times. Pay close attention to the customer name. Could work on pacing.",
		}
		text := strings.Join(corpus, " ")

		for _, max := range []int{1, 2, 3, 5} {
			e := mustExtractor(insight.WithMaxInsights(max))
			for _, p := range []insight.Polarity{insight.Positive, insight.Negative} {
				set := e.Extract(corpus, p)

				So(len(set.Items), ShouldBeLessThanOrEqualTo, max)
				seen := map[string]bool{}
				for _, item := range set.Items {
					So(seen[item], ShouldBeFalse)
					seen[item] = true

					So(utf8.RuneCountInString(item), ShouldBeBetweenOrEqual, 20, 200)
					So(strings.ContainsAny(item[len(item)-1:], ".!?"), ShouldBeTrue)

					idx := strings.Index(text, item)
					So(idx, ShouldBeGreaterThanOrEqualTo, 0)
					before := strings.TrimRight(text[:idx], " ")
					if before != "" {
						So(strings.ContainsAny(before[len(before)-1:], ".!?"), ShouldBeTrue)
					}
				}
			}
		}
	})

	Convey("Given accented feedback", t, func() {
		e := mustExtractor()
		clause := func(n int) string { return "Elle était excellente " + strings.Repeat("é", n) + "." }

		Convey("When a clause is within bounds in characters but not in bytes", func() {
			text := clause(120)
			set := e.Extract([]string{text}, insight.Positive)

			Convey("Then it should be kept", func() {
				So(utf8.RuneCountInString(text), ShouldEqual, 143)
				So(len(text), ShouldBeGreaterThan, 200)
				So(set.Items, ShouldResemble, []string{text})
			})
		})

		Convey("When a clause is exactly at the upper bound", func() {
			text := clause(177)

			Convey("Then it should be kept", func() {
				So(utf8.RuneCountInString(text), ShouldEqual, 200)
				So(e.Extract([]string{text}, insight.Positive).Items, ShouldResemble, []string{text})
			})
		})

		Convey("When a clause is one character over the upper bound", func() {
			text := clause(178)

			Convey("Then it should be dropped", func() {
				So(utf8.RuneCountInString(text), ShouldEqual, 201)
				So(e.Extract([]string{text}, insight.Positive).Empty(), ShouldBeTrue)
			})
		})

		Convey("When the text is shorter than the minimum in characters", func() {
			loose := mustExtractor(insight.WithInsightLength(1, 200))
			text := "éé clear."

			Convey("Then nothing should be scanned even though it is long enough in bytes", func() {
				So(len(text), ShouldBeGreaterThanOrEqualTo, 10)
				So(loose.Extract([]string{text}, insight.Positive).Empty(), ShouldBeTrue)
			})
		})
	})

	Convey("Given the same input twice", t, func() {
		e := mustExtractor()
		texts := []string{"Response was clear and professional. Agent should focus on the refund policy."}

		Convey("Then the output should be identical", func() {
			So(e.Extract(texts, insight.Positive), ShouldResemble, e.Extract(texts, insight.Positive))
			So(e.Extract(texts, insight.Negative), ShouldResemble, e.Extract(texts, insight.Negative))
		})
	})
}

func TestExtractorOptions(t *testing.T) {
	Convey("Given custom options", t, func() {
		Convey("When replacing the families", func() {
			e := mustExtractor(insight.WithFamilies(insight.Negative, `better|more|less`))
			set := e.Extract([]string{"Greeting could be a bit more personal."}, insight.Negative)

			Convey("Then only the new families should apply", func() {
				So(set.Items, ShouldResemble, []string{"Greeting could be a bit more personal."})
			})
		})

		Convey("When a family does not compile", func() {
			_, err := insight.NewExtractor(insight.WithFamilies(insight.Positive, `(unclosed`))

			Convey("Then construction should fail", func() {
				So(errors.Is(err, insight.ErrInvalidPattern), ShouldBeTrue)
			})
		})

		Convey("When loosening the length bounds", func() {
			e := mustExtractor(insight.WithInsightLength(5, 300), insight.WithMinTextLength(0))
			set := e.Extract([]string{"Clear reply."}, insight.Positive)

			Convey("Then short clauses should be accepted", func() {
				So(set.Items, ShouldResemble, []string{"Clear reply."})
				So(e.MaxInsights(), ShouldEqual, insight.DefaultMaxInsights)
			})
		})

		Convey("When allowing more matches per family", func() {
			e := mustExtractor(insight.WithMatchesPerFamily(3))
			text := "Excellent work. Great job. The reply was excellent and clear. Strong and clear summary at the end."
			set := e.Extract([]string{text}, insight.Positive)

			Convey("Then the third clause should be considered", func() {
				So(set.Items, ShouldResemble, []string{
					"The reply was excellent and clear.",
					"Strong and clear summary at the end.",
				})
			})
		})
	})
}
