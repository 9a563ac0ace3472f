package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/qainsight/internal/adapters/loader"
	service "github.com/okian/qainsight/internal/app"
)

const exportCSV = `Representative Name,Representative Email,Writing style (Score),Accuracy (Score),Empathy & Hepfulness (Score),Customer Experience (CX) rating,Writing style (Explanation),Feedback Focus Areas
Amy Adams,amy@acme.com,3,2,3,5,Well-structured reply that was easy to follow.,She needs to check the order history first.
Amy Adams,amy@acme.com,2,N/A,3,4,,Consider offering the refund earlier in the chat.
Ben Brown,ben@globex.com,1,1,2,,Tone was abrupt and the steps were missing.,
Ben Brown,ben@globex.com,NaN,NaN,NaN,,,
`

func TestServiceIntegration(t *testing.T) {
	ctx := context.Background()

	Convey("Given a scorecard export on disk", t, func() {
		path := filepath.Join(t.TempDir(), "export.csv")
		So(os.WriteFile(path, []byte(exportCSV), 0o600), ShouldBeNil)

		tbl, err := loader.New().LoadFile(ctx, path)
		So(err, ShouldBeNil)

		svc := newService(service.WithTitle("QA Report"))
		doc, err := svc.Generate(ctx, tbl, "")
		So(err, ShouldBeNil)
		out, err := svc.Render(doc, "markdown")
		So(err, ShouldBeNil)
		md := string(out)

		Convey("When the overall is derived from skill scores", func() {
			ben, _ := section(doc, "Ben Brown")

			Convey("Then rows with no scores should count but not affect means", func() {
				So(ben.Records, ShouldEqual, 2)
				So(*ben.Performance[0].Value, ShouldAlmostEqual, 4.0/3.0, 1e-9)
				So(ben.Performance[1].Value, ShouldBeNil)
			})
		})

		Convey("When rendering the markdown report", func() {
			Convey("Then the overview should show team rows and averages", func() {
				So(md, ShouldStartWith, "# QA Report - All Teams\n")
				So(md, ShouldContainSubstring, "- **Total Conversations:** 4\n")
				So(md, ShouldContainSubstring, "- **Team Members:** 2\n")
				So(md, ShouldContainSubstring, "- **Average CX Score:** 4.5/5.0\n")
				So(md, ShouldContainSubstring, "### Team Breakdown")
				So(md, ShouldContainSubstring, "Globex")
			})

			Convey("And agent sections should follow in name order", func() {
				amy := strings.Index(md, "### Amy Adams")
				ben := strings.Index(md, "### Ben Brown")
				So(amy, ShouldBeGreaterThan, strings.Index(md, "## Individual Agent Analysis"))
				So(ben, ShouldBeGreaterThan, amy)
			})

			Convey("And agent insights should come from every feedback column", func() {
				amy := md[strings.Index(md, "### Amy Adams"):strings.Index(md, "### Ben Brown")]
				So(amy, ShouldContainSubstring, "- Well-structured reply that was easy to follow.\n")
				So(amy, ShouldContainSubstring, "- She needs to check the order history first.\n")
				So(amy, ShouldContainSubstring, "- Consider offering the refund earlier in the chat.\n")

				ben := md[strings.Index(md, "### Ben Brown"):]
				So(ben, ShouldContainSubstring, "- "+"Continue current good practices"+"\n")
				So(ben, ShouldContainSubstring, "- Tone was abrupt and the steps were missing.\n")
			})
		})
	})
}
