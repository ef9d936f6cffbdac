package mcp

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/stats"
	"github.com/attendease/attendease/internal/domain/subject"
)

type listSubjectsInput struct{}

type listSubjectsOutput struct {
	Subjects []subject.Subject `json:"subjects"`
}

type markAttendanceInput struct {
	SubjectID     string `json:"subject_id" jsonschema:"subject identifier from list_subjects"`
	Date          string `json:"date,omitempty" jsonschema:"ISO date YYYY-MM-DD, defaults to today"`
	LecturesTotal int    `json:"lectures_total" jsonschema:"lectures held that day, 0 clears the entry"`
	Status        string `json:"status,omitempty" jsonschema:"present or absent, defaults to present"`
}

type markAttendanceOutput struct {
	Deleted bool          `json:"deleted,omitempty"`
	Entry   *ledger.Entry `json:"entry,omitempty"`
}

type statsInput struct {
	SubjectID string `json:"subject_id,omitempty" jsonschema:"subject to report on, omit for overall standing"`
}

type statsOutput struct {
	Subject *stats.SubjectStats `json:"subject,omitempty"`
	Overall *stats.OverallStats `json:"overall,omitempty"`
}

type weeklyReportInput struct{}

type weeklyReportOutput struct {
	Report stats.WeeklyReport `json:"report"`
}

// registerTools wires the attendance tools into the MCP server.
func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_subjects",
		Description: "List all subjects with their IDs and term lecture targets",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listSubjectsInput) (*sdkmcp.CallToolResult, listSubjectsOutput, error) {
		subjects, err := svcs.Subjects.List(ctx)
		if err != nil {
			return nil, listSubjectsOutput{}, err
		}
		return nil, listSubjectsOutput{Subjects: subjects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "mark_attendance",
		Description: "Record attendance for one subject on one date, overwriting any existing entry",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in markAttendanceInput) (*sdkmcp.CallToolResult, markAttendanceOutput, error) {
		userID := getUserID(ctx)
		if userID == "" {
			return nil, markAttendanceOutput{}, fmt.Errorf("unauthorized: missing user")
		}

		date := in.Date
		if !ledger.ValidDate(date) {
			date = time.Now().Format(ledger.DateLayout)
		}

		entry, err := svcs.Ledger.Upsert(ctx, userID, ledger.Upsert{
			SubjectID:       in.SubjectID,
			Date:            date,
			LecturesTotal:   in.LecturesTotal,
			LecturesPresent: ledger.PresentCount(in.LecturesTotal, ledger.Status(in.Status)),
		})
		if err != nil {
			return nil, markAttendanceOutput{}, err
		}
		if entry == nil {
			return nil, markAttendanceOutput{Deleted: true}, nil
		}
		return nil, markAttendanceOutput{Entry: entry}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_attendance_stats",
		Description: "Get attendance statistics for one subject, or overall when no subject is given",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in statsInput) (*sdkmcp.CallToolResult, statsOutput, error) {
		userID := getUserID(ctx)
		if userID == "" {
			return nil, statsOutput{}, fmt.Errorf("unauthorized: missing user")
		}

		if in.SubjectID != "" {
			subj, err := svcs.Stats.SubjectStats(ctx, userID, in.SubjectID)
			if err != nil {
				return nil, statsOutput{}, err
			}
			return nil, statsOutput{Subject: subj}, nil
		}

		overall, err := svcs.Stats.OverallStats(ctx, userID)
		if err != nil {
			return nil, statsOutput{}, err
		}
		return nil, statsOutput{Overall: overall}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_weekly_report",
		Description: "Get the attendance report for the week ending yesterday",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ weeklyReportInput) (*sdkmcp.CallToolResult, weeklyReportOutput, error) {
		userID := getUserID(ctx)
		if userID == "" {
			return nil, weeklyReportOutput{}, fmt.Errorf("unauthorized: missing user")
		}

		report, err := svcs.Stats.WeeklyReport(ctx, userID)
		if err != nil {
			return nil, weeklyReportOutput{}, err
		}
		return nil, weeklyReportOutput{Report: *report}, nil
	})
}
