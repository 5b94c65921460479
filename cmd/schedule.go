package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/CharbelDaher34/hair-AI-sub001/internal/ai"
	"github.com/CharbelDaher34/hair-AI-sub001/internal/ai/gemini"
	"github.com/CharbelDaher34/hair-AI-sub001/internal/hirehub"
	"github.com/CharbelDaher34/hair-AI-sub001/internal/logger"
	"github.com/CharbelDaher34/hair-AI-sub001/internal/scheduling"
	"github.com/CharbelDaher34/hair-AI-sub001/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptScheduleNew   = "Schedule a new interview"
	PromptEditInterview = "Edit a scheduled interview"
	PromptMarkDone      = "Mark an interview as done"
	PromptCancel        = "Cancel an interview"
	PromptProgress      = "Show sequence progress"
	PromptExit          = "Exit"
	PromptBack          = "back"
	PromptHumanMode     = "Human interviewer"
	PromptAIMode        = "AI interviewer"
	PromptNoInterviewer = "No interviewer yet"

	dateLayout = "2006-01-02 15:04"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptScheduleNew, PromptEditInterview, PromptMarkDone, PromptCancel, PromptProgress, PromptExit},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule and manage interviews for a job application",
	Run: func(cmd *cobra.Command, _ []string) {
		runSchedule(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringP("application", "a", "", "application id to schedule for. Prompted when unset.")
	scheduleCmd.Flags().Bool("ai", false, "start with the AI interviewer path preselected")
}

// scheduler carries the state of one interactive scheduling run.
type scheduler struct {
	hub          *hirehub.Client
	session      *scheduling.Session
	interviewers *hirehub.Interviewers
	plan         *hirehub.InterviewPlan
	briefer      ai.Briefer
	logger       *zap.Logger
}

// runSchedule is the main command for the cli.
func runSchedule(cmd *cobra.Command) {
	ctx := context.Background()

	logg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logg.Fatal("getting a config", zap.Error(err))
	}

	logg.Info("starting the hire-scheduler", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logg.Fatal("config is required")
	}

	token, err := resolveToken(config)
	if err != nil {
		logg.Fatal(
			"loading backend token",
			zap.Error(err),
			zap.String("hint", "set HIRE_TOKEN_FILE environment variable or the 'token-file' key in the configuration file"),
		)
	}

	hub := hirehub.New(ctx, logg, token)
	if config.APIURL != "" {
		hub.APIURL = config.APIURL
	}
	if config.UserAgent != "" {
		hub.UserAgent = config.UserAgent
	}

	applications, interviewers := fetchRosters(hub, logg)

	if applications.Len() == 0 {
		logg.Info("exiting", zap.String("reason", "no applications available for scheduling"))
		return
	}

	application, err := pickApplication(cmd, applications)
	if err != nil {
		logg.Fatal("selecting an application", zap.Error(err))
	}

	logg.Info("scheduling for application",
		logger.ScheduleFields(application.ID, "", "")...,
	)

	session := scheduling.NewSession(logg)
	epoch := session.SelectApplication(application)

	if config.Schedule != nil && config.Schedule.DefaultDelivery != "" {
		if err := session.SetDelivery(hirehub.DeliveryType(config.Schedule.DefaultDelivery)); err != nil {
			logg.Warn("ignoring configured default delivery", zap.Error(err))
		}
	}

	s := &scheduler{
		hub:          hub,
		session:      session,
		interviewers: interviewers,
		briefer:      prepareBriefer(ctx, config.AI, logg),
		logger:       logg,
	}

	s.loadPlan(epoch)

	if ok, _ := cmd.Flags().GetBool("ai"); ok {
		session.SetAIMode(true)
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logg.Fatal("exiting", zap.Error(err))
		}

		if err := s.handleAction(action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logg.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *scheduler) handleAction(action string) error {
	switch action {
	case PromptScheduleNew:
		return s.scheduleInterview()
	case PromptEditInterview:
		return s.editInterview()
	case PromptMarkDone:
		return s.transitionInterview(hirehub.StatusDone)
	case PromptCancel:
		return s.transitionInterview(hirehub.StatusCanceled)
	case PromptProgress:
		s.showProgress()
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func resolveToken(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "backend token",
		File: tokenFile,
		Env:  "HIRE_TOKEN",
	})
}

// fetchRosters requests the application and interviewer lists concurrently:
// the two reads have no data dependency. Either failure degrades to an empty
// dataset with a warning instead of aborting the flow.
func fetchRosters(hub *hirehub.Client, logg *zap.Logger) (*hirehub.Applications, *hirehub.Interviewers) {
	type applicationsResult struct {
		applications *hirehub.Applications
		err          error
	}
	type interviewersResult struct {
		interviewers *hirehub.Interviewers
		err          error
	}

	applicationsCh := make(chan applicationsResult, 1)
	interviewersCh := make(chan interviewersResult, 1)

	go func() {
		applications, err := hub.GetApplications()
		applicationsCh <- applicationsResult{applications, err}
	}()
	go func() {
		interviewers, err := hub.GetInterviewers()
		interviewersCh <- interviewersResult{interviewers, err}
	}()

	applications := <-applicationsCh
	if applications.err != nil {
		logg.Warn("getting applications failed, continuing with an empty list", zap.Error(applications.err))
		applications.applications = &hirehub.Applications{}
	}

	interviewers := <-interviewersCh
	if interviewers.err != nil {
		logg.Warn("getting interviewers failed, continuing with an empty roster", zap.Error(interviewers.err))
		interviewers.interviewers = &hirehub.Interviewers{}
	}

	logg.Info("loaded scheduling data",
		zap.Int("applications", applications.applications.Len()),
		zap.Int("interviewers", interviewers.interviewers.Len()),
	)

	return applications.applications, interviewers.interviewers
}

// loadPlan fetches the interview plan for the session's application, falling
// back to assembling one from the job sequence and the recorded interviews
// when the plan endpoint fails. If that fails too the resolution stays
// unknown: the category falls back to manual selection instead of blocking
// the form.
func (s *scheduler) loadPlan(epoch uint64) {
	application := s.session.Application()

	plan, err := s.hub.GetInterviewPlan(application.ID)
	if err != nil {
		s.logger.Warn("interview plan unavailable, deriving it locally", zap.Error(err))
		plan = s.assemblePlan(application)
	}

	if s.session.ApplyPlan(epoch, plan) {
		s.plan = plan
	}
}

func (s *scheduler) assemblePlan(application *hirehub.Application) *hirehub.InterviewPlan {
	job, err := s.hub.GetJob(application.JobID)
	if err != nil {
		s.logger.Warn("could not determine the next interview category", zap.Error(err))
		return nil
	}

	interviews, err := s.hub.GetInterviews(application.ID)
	if err != nil {
		s.logger.Warn("could not determine the next interview category", zap.Error(err))
		return nil
	}

	resolution := scheduling.Resolve(job.InterviewSequence, interviews.CompletedCategories())

	return &hirehub.InterviewPlan{
		Sequence:   job.InterviewSequence,
		Completed:  interviews.CompletedCategories(),
		IsComplete: resolution.Complete,
		TotalSteps: resolution.TotalSteps,
	}
}

func pickApplication(cmd *cobra.Command, applications *hirehub.Applications) (*hirehub.Application, error) {
	if id, _ := cmd.Flags().GetString("application"); id != "" {
		application := applications.FindByID(id)
		if application == nil {
			return nil, fmt.Errorf("there is no such application id %s", id)
		}
		return application, nil
	}

	items := make([]string, 0, applications.Len())
	for _, application := range applications.Items {
		items = append(items, application.Label())
	}

	applicationPrompt := promptui.Select{
		Label: "Choose an application and press ENTER",
		Items: items,
	}

	_, selected, err := applicationPrompt.Run()
	if err != nil {
		return nil, err
	}

	id := strings.Split(selected, " ")[0]
	application := applications.FindByID(id)
	if application == nil {
		return nil, fmt.Errorf("there is no such application id %s", id)
	}

	return application, nil
}

// scheduleInterview drives one create flow: mode, interviewer, category,
// delivery, date, gate, submit.
func (s *scheduler) scheduleInterview() error {
	modePrompt := promptui.Select{
		Label: "Who conducts the interview?",
		Items: []string{PromptHumanMode, PromptAIMode, PromptBack},
	}

	_, mode, err := modePrompt.Run()
	if err != nil {
		return err
	}

	switch mode {
	case PromptBack:
		return nil
	case PromptAIMode:
		s.session.SetAIMode(true)
	case PromptHumanMode:
		s.session.SetAIMode(false)

		if err := s.pickInterviewer(); err != nil {
			return err
		}
		if err := s.pickCategory(); err != nil {
			return err
		}
		if err := s.pickDelivery(); err != nil {
			return err
		}
	}

	if err := s.pickDate(time.Time{}); err != nil {
		return err
	}

	if err := s.session.Gate(); err != nil {
		s.logger.Warn("submission blocked", zap.Error(err))
		return nil
	}

	s.attachBriefing()

	draft, err := s.session.Draft()
	if err != nil {
		return err
	}

	created, err := s.hub.CreateInterview(draft)
	if err != nil {
		return err
	}

	s.logger.Info("interview scheduled",
		append(
			logger.ScheduleFields(draft.ApplicationID, stringOrEmpty(draft.InterviewerID), stringOrEmpty(draft.Category)),
			zap.String("interview_id", created.ID),
			zap.Bool("ai", draft.IsAI),
			zap.String("date", draft.Date),
		)...,
	)

	// Scheduling does not advance the sequence: only DONE interviews count.
	return nil
}

// pickInterviewer loops until a workable interviewer is chosen. A blocking
// compatibility result sends the user back to the roster; an advisory one is
// logged and accepted.
func (s *scheduler) pickInterviewer() error {
	for {
		items := make([]string, 0, s.interviewers.Len()+1)
		for _, interviewer := range s.interviewers.Items {
			items = append(items, interviewer.Label())
		}
		items = append(items, PromptNoInterviewer)

		interviewerPrompt := promptui.Select{
			Label: "Choose an interviewer and press ENTER",
			Items: items,
		}

		_, selected, err := interviewerPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptNoInterviewer {
			s.session.SelectInterviewer(nil)
			return nil
		}

		id := strings.Split(selected, " ")[0]
		interviewer := s.interviewers.FindByID(id)
		if interviewer == nil {
			return fmt.Errorf("there is no such interviewer id %s", id)
		}

		s.session.SelectInterviewer(interviewer)

		compat := s.session.Compatibility()
		if compat.Blocking() {
			s.logger.Warn(compat.Warning,
				logger.ScheduleFields("", interviewer.ID, "")...,
			)
			continue
		}

		if compat.Warning != "" {
			s.logger.Warn(compat.Warning,
				logger.ScheduleFields("", interviewer.ID, "")...,
			)
		}

		return nil
	}
}

// pickCategory offers the available categories with the resolver's
// suggestion preselected, falling back to manual entry when the sequence is
// unknown.
func (s *scheduler) pickCategory() error {
	options := s.session.CategoryOptions()

	if len(options) == 0 {
		manualPrompt := promptui.Prompt{
			Label: "Interview category (sequence unavailable, enter manually or leave empty)",
		}

		category, err := manualPrompt.Run()
		if err != nil {
			return err
		}
		if strings.TrimSpace(category) == "" {
			return nil
		}

		return s.session.SelectCategory(strings.TrimSpace(category))
	}

	cursor := 0
	if suggested := s.session.SuggestedCategory(); suggested != "" {
		for idx, option := range options {
			if option == suggested {
				cursor = idx
				break
			}
		}
		s.logger.Info("suggested next category",
			zap.String("category", suggested),
			zap.Int("step", s.session.Resolution().StepNumber),
			zap.Int("total_steps", s.session.Resolution().TotalSteps),
		)
	}

	categoryPrompt := promptui.Select{
		Label:     "Choose the interview category",
		Items:     options,
		CursorPos: cursor,
	}

	_, category, err := categoryPrompt.Run()
	if err != nil {
		return err
	}

	return s.session.SelectCategory(category)
}

func (s *scheduler) pickDelivery() error {
	deliveryPrompt := promptui.Select{
		Label: "How is the interview conducted?",
		Items: []string{string(hirehub.DeliveryVideo), string(hirehub.DeliveryPhone), string(hirehub.DeliveryLive)},
	}

	_, delivery, err := deliveryPrompt.Run()
	if err != nil {
		return err
	}

	return s.session.SetDelivery(hirehub.DeliveryType(delivery))
}

func (s *scheduler) pickDate(current time.Time) error {
	datePrompt := promptui.Prompt{
		Label: fmt.Sprintf("Interview date and time (%s, local time)", dateLayout),
		Validate: func(input string) error {
			_, err := time.ParseInLocation(dateLayout, strings.TrimSpace(input), time.Local)
			return err
		},
	}

	if !current.IsZero() {
		datePrompt.Default = current.Local().Format(dateLayout)
	}

	input, err := datePrompt.Run()
	if err != nil {
		return err
	}

	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(input), time.Local)
	if err != nil {
		return err
	}

	s.session.SetDate(date)
	return nil
}

// editInterview reconstructs the derived state for an existing record in a
// fresh session and submits the changed fields. The recorded category is
// kept unless the user picks another one.
func (s *scheduler) editInterview() error {
	interview, err := s.pickScheduledInterview("Choose an interview to edit")
	if err != nil || interview == nil {
		return err
	}

	edit := scheduling.NewSession(s.logger)
	epoch := edit.SelectApplication(s.session.Application())
	edit.ApplyPlan(epoch, s.plan)

	if interview.InterviewerID != "" {
		edit.SelectInterviewer(s.interviewers.FindByID(interview.InterviewerID))
	}

	if err := edit.LoadInterview(interview); err != nil {
		return err
	}

	previous := s.session
	s.session = edit
	defer func() { s.session = previous }()

	if err := s.pickDate(interview.When()); err != nil {
		return err
	}

	if err := s.session.Gate(); err != nil {
		s.logger.Warn("submission blocked", zap.Error(err))
		return nil
	}

	draft, err := s.session.Draft()
	if err != nil {
		return err
	}

	updated, err := s.hub.UpdateInterview(interview.ID, draft)
	if err != nil {
		return err
	}

	s.logger.Info("interview updated",
		zap.String("interview_id", updated.ID),
		zap.String("date", draft.Date),
	)

	return nil
}

// transitionInterview moves a SCHEDULED interview to DONE or CANCELED. A
// completed interview consumes its category, so the plan is refreshed
// afterwards to show the advanced resolution.
func (s *scheduler) transitionInterview(next hirehub.Status) error {
	label := fmt.Sprintf("Choose an interview to mark %s", next)

	interview, err := s.pickScheduledInterview(label)
	if err != nil || interview == nil {
		return err
	}

	if err := s.hub.UpdateInterviewStatus(interview, next); err != nil {
		return err
	}

	s.logger.Info("interview status updated",
		zap.String("interview_id", interview.ID),
		zap.String("status", string(next)),
	)

	if next == hirehub.StatusDone {
		s.loadPlan(s.session.Epoch())
		s.showProgress()
	}

	return nil
}

func (s *scheduler) pickScheduledInterview(label string) (*hirehub.Interview, error) {
	interviews, err := s.hub.GetInterviews(s.session.Application().ID)
	if err != nil {
		return nil, fmt.Errorf("get interviews: %w", err)
	}

	scheduled := interviews.Scheduled()
	if len(scheduled) == 0 {
		s.logger.Info("no scheduled interviews for this application")
		return nil, nil
	}

	items := make([]string, 0, len(scheduled)+1)
	for _, interview := range scheduled {
		conductor := interview.InterviewerID
		if interview.IsAI {
			conductor = "ai"
		}
		items = append(items, fmt.Sprintf("%s %s / %s / %s",
			interview.ID, interview.Category, conductor, interview.Date,
		))
	}

	interviewPrompt := promptui.Select{
		Label: label,
		Items: append(items, PromptBack),
	}

	_, selected, err := interviewPrompt.Run()
	if err != nil {
		return nil, err
	}

	if selected == PromptBack {
		return nil, nil
	}

	id := strings.Split(selected, " ")[0]
	interview := interviews.FindByID(id)
	if interview == nil {
		return nil, fmt.Errorf("there is no such interview id %s", id)
	}

	return interview, nil
}

func (s *scheduler) showProgress() {
	resolution := s.session.Resolution()
	if resolution == nil {
		s.logger.Info("sequence progress is unknown", zap.String("reason", "interview plan could not be fetched"))
		return
	}

	if resolution.Complete {
		s.logger.Info("interview sequence complete",
			zap.Int("total_steps", resolution.TotalSteps),
			zap.Strings("completed_categories", resolution.Completed),
		)
		return
	}

	s.logger.Info("interview sequence progress",
		zap.String("next_category", resolution.NextCategory),
		zap.Int("step", resolution.StepNumber),
		zap.Int("total_steps", resolution.TotalSteps),
		zap.Strings("completed_categories", resolution.Completed),
	)
}

// attachBriefing decorates a human interview with a generated briefing note.
// Failures only cost the note.
func (s *scheduler) attachBriefing() {
	if s.briefer == nil || s.session.AIMode() || s.session.Category() == "" {
		return
	}

	application := s.session.Application()

	req := &ai.BriefRequest{
		Candidate: application.CandidateName,
		JobTitle:  application.JobTitle,
		Category:  s.session.Category(),
	}

	if resolution := s.session.Resolution(); resolution != nil {
		req.Completed = resolution.Completed
		req.StepNumber = resolution.StepNumber
		req.TotalSteps = resolution.TotalSteps
	}

	briefing, err := s.briefer.Brief(context.Background(), req)
	if err != nil {
		s.logger.Warn("skipping briefing note", zap.Error(err))
		return
	}

	s.session.SetNotes(briefing.Note)
}

func prepareBriefer(ctx context.Context, config *AIConfig, logg *zap.Logger) ai.Briefer {
	if config == nil || !config.Enabled {
		return nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		logg.Warn("skipping briefing notes", zap.String("reason", fmt.Sprintf("unsupported ai provider: %s", config.Provider)))
		return nil
	}

	if config.Gemini == nil {
		logg.Warn("skipping briefing notes", zap.String("reason", "gemini configuration is required when ai is enabled"))
		return nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.Gemini.APIKeyFile,
	})
	if err != nil {
		logg.Warn("skipping briefing notes", zap.Error(err))
		return nil
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		logg.Warn("skipping briefing notes", zap.Error(err))
		return nil
	}

	brieferLogger := logg.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewBriefer(generator, config.Gemini.MaxRetries, config.Gemini.MaxLogLength, brieferLogger)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
