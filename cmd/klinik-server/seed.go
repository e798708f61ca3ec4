package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/klinik/klinik/internal/domain/diagnostics"
	"github.com/klinik/klinik/internal/domain/emergency"
	"github.com/klinik/klinik/internal/domain/identity"
	"github.com/klinik/klinik/internal/domain/rikkes"
	"github.com/klinik/klinik/internal/domain/scheduling"
	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/sandbox"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert reference data",
	}

	bedsCmd := &cobra.Command{
		Use:   "beds",
		Short: "Create numbered IGD beds that do not exist yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			ctx := context.Background()
			_, pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := emergency.NewService(emergency.NewCaseRepoPG(pool), emergency.NewBedRepoPG(pool))
			var created int
			err = db.WithTx(ctx, pool, func(ctx context.Context) error {
				var err error
				created, err = svc.SeedBeds(ctx, count)
				return err
			})
			if err != nil {
				return fmt.Errorf("seed beds: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d bed(s), %d already present.\n", created, count-created)
			return nil
		},
	}
	bedsCmd.Flags().Int("count", 10, "Number of beds the IGD should have")
	cmd.AddCommand(bedsCmd)

	defaults := sandbox.DefaultSeedConfig()
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate demo patients, staff and today's clinic activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			scfg := sandbox.SeedConfig{}
			scfg.Patients, _ = flags.GetInt("patients")
			scfg.Doctors, _ = flags.GetInt("doctors")
			scfg.Nurses, _ = flags.GetInt("nurses")
			scfg.Appointments, _ = flags.GetInt("appointments")
			scfg.IGDCases, _ = flags.GetInt("igd-cases")
			scfg.LabTests, _ = flags.GetInt("lab-tests")
			scfg.Participants, _ = flags.GetInt("participants")
			scfg.Seed, _ = flags.GetInt64("seed")

			ctx := context.Background()
			cfg, pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			logger := newLogger(cfg)
			var result *sandbox.SeedResult
			err = db.WithTx(ctx, pool, func(ctx context.Context) error {
				var err error
				result, err = sandbox.NewSeeder(scfg, serviceSink(pool), time.Now(), logger).Run(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("seed demo: %w", err)
			}
			printSeedResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	demoCmd.Flags().Int("patients", defaults.Patients, "Number of patients")
	demoCmd.Flags().Int("doctors", defaults.Doctors, "Number of doctors, alternating general and dental")
	demoCmd.Flags().Int("nurses", defaults.Nurses, "Number of nurses")
	demoCmd.Flags().Int("appointments", defaults.Appointments, "Appointments booked for today")
	demoCmd.Flags().Int("igd-cases", defaults.IGDCases, "IGD admissions in the last twelve hours")
	demoCmd.Flags().Int("lab-tests", defaults.LabTests, "Lab test orders")
	demoCmd.Flags().Int("participants", defaults.Participants, "Rikkes participants examined today")
	demoCmd.Flags().Int64("seed", 0, "Random seed; 0 picks one from the clock")
	cmd.AddCommand(demoCmd)

	return cmd
}

func serviceSink(pool *pgxpool.Pool) sandbox.ServiceSink {
	return sandbox.ServiceSink{
		Identity: identity.NewService(
			identity.NewPatientRepoPG(pool), identity.NewDoctorRepoPG(pool), identity.NewNurseRepoPG(pool)),
		Scheduling:  scheduling.NewService(scheduling.NewAppointmentRepoPG(pool)),
		Emergency:   emergency.NewService(emergency.NewCaseRepoPG(pool), emergency.NewBedRepoPG(pool)),
		Diagnostics: diagnostics.NewService(diagnostics.NewLabTestRepoPG(pool)),
		Rikkes:      rikkes.NewService(rikkes.NewParticipantRepoPG(pool), rikkes.NewExaminationRepoPG(pool)),
	}
}

func printSeedResult(w io.Writer, r *sandbox.SeedResult) {
	fmt.Fprintf(w, "Patients:      %d\n", r.Patients)
	fmt.Fprintf(w, "Doctors:       %d\n", r.Doctors)
	fmt.Fprintf(w, "Nurses:        %d\n", r.Nurses)
	fmt.Fprintf(w, "Appointments:  %d\n", r.Appointments)
	fmt.Fprintf(w, "IGD cases:     %d\n", r.IGDCases)
	fmt.Fprintf(w, "Lab tests:     %d\n", r.LabTests)
	fmt.Fprintf(w, "Participants:  %d\n", r.Participants)
	fmt.Fprintf(w, "Created %d record(s) in %s.\n", r.Total(), r.Duration.Round(time.Millisecond))
}
