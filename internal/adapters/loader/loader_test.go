package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/qainsight/internal/adapters/loader"
	"github.com/okian/qainsight/internal/domain/model"
)

func text(t *model.Table, r, c int) string {
	s, _ := t.Cell(r, c).String()
	return s
}

func TestReadCSV(t *testing.T) {
	ctx := context.Background()

	Convey("Given a CSV export with a BOM, padded headers and missing markers", t, func() {
		in := "\ufeffRepresentative Name , QA Score,Comment\n" +
			"John Doe,2,Great\n" +
			"Jane,N/A,\n" +
			",,\n" +
			"Short\n"
		tbl, err := loader.New().ReadCSV(ctx, strings.NewReader(in))

		Convey("Then headers should be trimmed and stripped of the BOM", func() {
			So(err, ShouldBeNil)
			So(tbl.Columns, ShouldResemble, []string{"Representative Name", "QA Score", "Comment"})
		})

		Convey("And blank rows should be skipped", func() {
			So(tbl.Len(), ShouldEqual, 3)
		})

		Convey("And markers, empty cells and short rows should read as missing", func() {
			So(text(tbl, 0, 0), ShouldEqual, "John Doe")
			So(tbl.Cell(0, 1).Number(), ShouldResemble, model.Some(2))
			So(tbl.Cell(1, 1).IsMissing(), ShouldBeTrue)
			So(tbl.Cell(1, 2).IsMissing(), ShouldBeTrue)
			So(text(tbl, 2, 0), ShouldEqual, "Short")
			So(tbl.Cell(2, 1).IsMissing(), ShouldBeTrue)
			So(tbl.Cell(2, 2).IsMissing(), ShouldBeTrue)
		})
	})

	Convey("Given an empty CSV", t, func() {
		_, err := loader.New().ReadCSV(ctx, strings.NewReader(""))

		Convey("Then it should report empty input", func() {
			So(errors.Is(err, loader.ErrEmptyInput), ShouldBeTrue)
		})
	})

	Convey("Given custom missing markers", t, func() {
		l := loader.New(loader.WithMissingMarkers("-"))
		tbl, err := l.ReadCSV(ctx, strings.NewReader("Name,Score\nAmy,-\nBob,NA\n"))

		Convey("Then only those markers should read as missing", func() {
			So(err, ShouldBeNil)
			So(tbl.Cell(0, 1).IsMissing(), ShouldBeTrue)
			So(text(tbl, 1, 1), ShouldEqual, "NA")
		})
	})
}

func writeWorkbook(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "scores.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given an XLSX export", t, func() {
		path := writeWorkbook(t, t.TempDir(), [][]any{
			{"Representative Name", "QA Score", "Representative Email"},
			{"John Doe", 2.5, "john@acme.com"},
			{"Jane", "NaN", "jane@globex.com"},
		})
		tbl, err := loader.New().LoadFile(ctx, path)

		Convey("Then cells should load from the first sheet", func() {
			So(err, ShouldBeNil)
			So(tbl.Columns, ShouldResemble, []string{"Representative Name", "QA Score", "Representative Email"})
			So(tbl.Len(), ShouldEqual, 2)
			So(tbl.Cell(0, 1).Number(), ShouldResemble, model.Some(2.5))
			So(tbl.Cell(1, 1).IsMissing(), ShouldBeTrue)
			So(text(tbl, 1, 2), ShouldEqual, "jane@globex.com")
		})
	})

	Convey("Given a CSV file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "scores.CSV")
		So(os.WriteFile(path, []byte("Name,Score\nAmy,3\n"), 0o600), ShouldBeNil)
		tbl, err := loader.New().LoadFile(ctx, path)

		Convey("Then the extension should select the CSV reader", func() {
			So(err, ShouldBeNil)
			So(tbl.Len(), ShouldEqual, 1)
		})
	})

	Convey("Given an unsupported extension", t, func() {
		_, err := loader.New().LoadFile(ctx, "scores.json")

		Convey("Then it should be rejected before opening", func() {
			So(errors.Is(err, loader.ErrUnsupportedFormat), ShouldBeTrue)
		})
	})

	Convey("Given a missing sheet name", t, func() {
		path := writeWorkbook(t, t.TempDir(), [][]any{{"Name"}, {"Amy"}})
		_, err := loader.New(loader.WithSheet("Nope")).LoadFile(ctx, path)

		Convey("Then it should fail", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
