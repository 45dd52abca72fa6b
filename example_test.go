package edspdf_test

import (
	"fmt"
	"log"

	"github.com/acalliger/edspdf"
	"github.com/acalliger/edspdf/model"
)

func Example_aggregate() {
	lines := []model.LineRecord{
		{Text: "Hello", BBox: model.NewBBox(0.1, 0.10, 0.5, 0.12), Label: "body"},
		{Text: "world", BBox: model.NewBBox(0.1, 0.121, 0.5, 0.141), Label: "body"},
		{
			Text:   "Signed",
			BBox:   model.NewBBox(0.1, 0.30, 0.5, 0.32),
			Label:  "body",
			Styles: []model.StyleSpan{{Start: 0, End: 6, Attributes: model.Attributes{"italic": model.BoolValue(true)}}},
		},
	}

	res, warnings, err := edspdf.FromLines(lines).Thresholds(0.05, 0.1).Aggregate()
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range warnings {
		fmt.Println("Warning:", w)
	}

	fmt.Printf("%q\n", res.Text["body"])
	for _, s := range res.Styles["body"] {
		fmt.Println(s.Start, s.End, res.Substring("body", s))
	}
	// Output:
	// "Hello world\n\nSigned"
	// 13 19 Signed
}

func Example_openFile() {
	// Records may be JSON, JSON Lines or MessagePack
	body, warnings, err := edspdf.Open("lines.jsonl").
		Thresholds(0.005, 0.02).
		SortReadingOrder().
		Text("body")
	_ = body
	_ = warnings
	_ = err
}

func Example_dates() {
	dates, _, err := edspdf.Open("lines.json").
		Thresholds(0.005, 0.02).
		Labels("header", "body").
		Dates()
	if err != nil {
		log.Fatal(err)
	}
	for label, mentions := range dates {
		for _, m := range mentions {
			fmt.Println(label, m.Date, m.Context)
		}
	}
}
