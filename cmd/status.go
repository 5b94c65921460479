package cmd

import (
	"context"
	"log"

	"github.com/CharbelDaher34/hair-AI-sub001/internal/hirehub"
	"github.com/CharbelDaher34/hair-AI-sub001/internal/logger"
	"github.com/CharbelDaher34/hair-AI-sub001/internal/scheduling"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show an application's progress through its interview sequence",
	Run: func(cmd *cobra.Command, _ []string) {
		runStatus(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringP("application", "a", "", "application id to report on")
	statusCmd.MarkFlagRequired("application")
}

func runStatus(cmd *cobra.Command) {
	ctx := context.Background()

	logg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logg.Fatal("getting a config", zap.Error(err))
	}

	token, err := resolveToken(config)
	if err != nil {
		logg.Fatal("loading backend token", zap.Error(err))
	}

	hub := hirehub.New(ctx, logg, token)
	if config.APIURL != "" {
		hub.APIURL = config.APIURL
	}
	if config.UserAgent != "" {
		hub.UserAgent = config.UserAgent
	}

	applicationID, _ := cmd.Flags().GetString("application")

	application, err := hub.GetApplication(applicationID)
	if err != nil {
		logg.Fatal("getting the application",
			zap.Error(err),
			zap.String("application_id", applicationID),
		)
	}

	logg.Info("application",
		zap.String("candidate", application.CandidateName),
		zap.String("position", application.JobTitle),
		zap.Int("recorded_interviews", len(application.Interviews)),
	)

	plan, err := hub.GetInterviewPlan(applicationID)
	if err != nil {
		logg.Fatal("could not determine the next interview category",
			zap.Error(err),
			zap.String("application_id", applicationID),
		)
	}

	resolution := scheduling.Resolve(plan.Sequence, plan.Completed)

	if resolution.Complete {
		logg.Info("interview sequence complete",
			zap.String("application_id", applicationID),
			zap.Int("total_steps", resolution.TotalSteps),
			zap.Strings("completed_categories", resolution.Completed),
		)
		return
	}

	logg.Info("interview sequence progress",
		zap.String("application_id", applicationID),
		zap.String("next_category", resolution.NextCategory),
		zap.Int("step", resolution.StepNumber),
		zap.Int("total_steps", resolution.TotalSteps),
		zap.Strings("completed_categories", resolution.Completed),
	)
}
