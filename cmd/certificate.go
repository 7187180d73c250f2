package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/certificate"
)

var certificateCmd = &cobra.Command{
	Use:   "certificate",
	Short: "Render a PNG certificate for a finished session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		name, _ := cmd.Flags().GetString("name")
		out, _ := cmd.Flags().GetString("out")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := st.HistoryRepo().GetSession(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("session %q not found", sessionID)
		}
		if rec.FinishedAt == nil {
			return fmt.Errorf("session %s is not finished", rec.ID)
		}

		if name == "" {
			name = rec.Learner
		}
		if name == "" {
			name = cfg.Learner
		}
		if name == "" {
			return fmt.Errorf("--name is required: the session has no learner name")
		}

		date := *rec.FinishedAt
		if out == "" {
			out = filepath.Join(cfg.Certificate.Dir, certificate.FileName(name, date))
		}

		r, err := certificate.NewRenderer(cfg.Certificate.FontPath)
		if err != nil {
			return err
		}
		err = r.Save(out, certificate.Data{
			Learner: name,
			Title:   rec.Source,
			Correct: rec.Correct,
			Total:   rec.Total,
			Stars:   rec.Stars,
			Date:    date.In(time.Local),
		})
		if err != nil {
			return err
		}
		fmt.Println("Saved", out)
		return nil
	},
}

func init() {
	certificateCmd.Flags().String("session", "", "Session ID or unique prefix (see `wordiz history`)")
	certificateCmd.Flags().String("name", "", "Learner name printed on the certificate")
	certificateCmd.Flags().String("out", "", "Output PNG path")
	_ = certificateCmd.MarkFlagRequired("session")
}
