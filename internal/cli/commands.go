package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lshigami/intuity-sync/internal/dto"
	"github.com/lshigami/intuity-sync/internal/model"
	"github.com/lshigami/intuity-sync/internal/service"
	"github.com/spf13/cobra"
)

type PublishOptions struct {
	*RootOptions
	ID        string
	CreatedBy string
}

func NewPublishCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PublishOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "publish <question text>",
		Short: "Publish a question",
		Example: `  intuity publish "What is 2+2?"
  intuity publish --id q_week3 "Explain photosynthesis" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.PublishQuestionRequest{
				ID:        opts.ID,
				Text:      strings.Join(args, " "),
				CreatedBy: opts.CreatedBy,
			}
			return withService(cmd, rootOpts, func(ctx context.Context, svc service.SyncService, out io.Writer) error {
				res := svc.PublishQuestion(ctx, req)
				f := &OutputFormatter{Format: opts.Format, Writer: out}
				return f.Success(res, func(w io.Writer) {
					fmt.Fprintf(w, "Published %s (synced: %t)\n", res.Question.ID, res.Synced)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "question id (generated when empty)")
	cmd.Flags().StringVar(&opts.CreatedBy, "created-by", "", "author recorded with the question")

	return cmd
}

func NewCurrentCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the question students currently see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, rootOpts, func(ctx context.Context, svc service.SyncService, out io.Writer) error {
				res := svc.GetCurrentQuestion(ctx)
				f := &OutputFormatter{Format: rootOpts.Format, Writer: out}
				return f.Success(res, func(w io.Writer) {
					if !res.Found {
						fmt.Fprintln(w, "No question published")
						return
					}
					fmt.Fprintf(w, "%s\t%s\n", res.Question.ID, res.Question.Text)
				})
			})
		},
	}
}

type SubmitOptions struct {
	*RootOptions
	QuestionID   string
	QuestionText string
	Student      string
	WordCount    int
	Quality      string
	Score        float64
}

func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SubmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "submit <answer>",
		Short:   "Submit a student answer",
		Example: `  intuity submit --student Ana --question-id q_1700000000000 "It is four"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.SubmitResponseRequest{
				QuestionID:   opts.QuestionID,
				QuestionText: opts.QuestionText,
				StudentName:  opts.Student,
				Answer:       strings.Join(args, " "),
				Quality:      opts.Quality,
			}
			if cmd.Flags().Changed("word-count") {
				req.WordCount = &opts.WordCount
			}
			if cmd.Flags().Changed("score") {
				req.Score = &opts.Score
			}
			return withService(cmd, rootOpts, func(ctx context.Context, svc service.SyncService, out io.Writer) error {
				res := svc.SubmitResponse(ctx, req)
				f := &OutputFormatter{Format: opts.Format, Writer: out}
				return f.Success(res, func(w io.Writer) {
					fmt.Fprintf(w, "Submitted %s (synced: %t)\n", res.Response.ID, res.Synced)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Student, "student", "", "student name")
	cmd.Flags().StringVar(&opts.QuestionID, "question-id", "", "id of the question being answered")
	cmd.Flags().StringVar(&opts.QuestionText, "question-text", "", "text of the question being answered")
	cmd.Flags().IntVar(&opts.WordCount, "word-count", 0, "word count (counted from the answer when omitted)")
	cmd.Flags().StringVar(&opts.Quality, "quality", "", "quality label")
	cmd.Flags().Float64Var(&opts.Score, "score", 0, "numeric score")

	return cmd
}

func NewQuestionsCommand(rootOpts *RootOptions) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List stored questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, rootOpts, func(ctx context.Context, svc service.SyncService, out io.Writer) error {
				f := &OutputFormatter{Format: rootOpts.Format, Writer: out}
				var questions []model.Question
				if remote {
					var err error
					if questions, err = svc.RemoteQuestions(ctx); err != nil {
						return WrapExitError(ExitFailure, "failed to list remote questions", err)
					}
				} else {
					questions = svc.GetAllQuestions(ctx)
				}
				return f.Success(nonNil(questions), func(w io.Writer) {
					printQuestions(w, questions)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "list the remote table instead of local storage")

	return cmd
}

func NewResponsesCommand(rootOpts *RootOptions) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "responses",
		Short: "List stored student responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, rootOpts, func(ctx context.Context, svc service.SyncService, out io.Writer) error {
				f := &OutputFormatter{Format: rootOpts.Format, Writer: out}
				var responses []model.Response
				if remote {
					var err error
					if responses, err = svc.RemoteResponses(ctx); err != nil {
						return WrapExitError(ExitFailure, "failed to list remote responses", err)
					}
				} else {
					responses = svc.GetAllResponses(ctx)
				}
				return f.Success(nonNil(responses), func(w io.Writer) {
					printResponses(w, responses)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "list the remote table instead of local storage")

	return cmd
}

func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Re-send every local response to the remote database",
		Long: `Re-send every local response to the remote database.

No record of earlier sends is kept, so running this twice inserts every
response twice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, rootOpts, func(ctx context.Context, svc service.SyncService, out io.Writer) error {
				report := svc.SyncOfflineData(ctx)
				f := &OutputFormatter{Format: rootOpts.Format, Writer: out}
				return f.Success(report, func(w io.Writer) {
					if report.Skipped {
						fmt.Fprintln(w, "Remote database not reachable, nothing sent")
						return
					}
					fmt.Fprintf(w, "Attempted %d, synced %d, failed %d\n", report.Attempted, report.Synced, report.Failed)
				})
			})
		},
	}
}

func printQuestions(w io.Writer, questions []model.Question) {
	if len(questions) == 0 {
		fmt.Fprintln(w, "No questions")
		return
	}
	for _, q := range questions {
		fmt.Fprintf(w, "%s\t%s\n", q.ID, q.Text)
	}
}

func printResponses(w io.Writer, responses []model.Response) {
	if len(responses) == 0 {
		fmt.Fprintln(w, "No responses")
		return
	}
	for _, r := range responses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.QuestionID, r.StudentName, r.Answer)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
