package tutoring

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/oetutor/tutorhub/core"
)

var (
	// errors
	ErrNotFound          = errors.New("not found")
	ErrNoAccount         = errors.New("no account found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrEmailExists       = errors.New("email already in use")
)

// Service is the application core: every query and mutation goes through
// here. It keeps an in-memory mirror of the database document and writes it
// back through the store synchronously after each mutation, so persisted
// state is never stale relative to what callers observe.
//
// All dependencies are injected; independent Service instances never
// interfere.
type Service struct {
	conf    *core.Config
	store   *DocumentStore
	clock   core.Clock
	mailSvc core.EmailService
	logger  core.Logger

	db      *Database
	session Session
}

// NewService opens (or seeds) the database document, applies the shaping
// migration, and restores the session.
func NewService(conf *core.Config, store *DocumentStore, clock core.Clock, mailSvc core.EmailService, logger core.Logger) (*Service, error) {
	svc := &Service{conf: conf, store: store, clock: clock, mailSvc: mailSvc, logger: logger}

	db, err := store.LoadDatabase()
	if err != nil {
		return nil, err
	}
	if db == nil {
		db = Seed(clock)
		svc.db = db
		if err := svc.save(); err != nil {
			return nil, err
		}
	} else {
		svc.db = db
	}
	if svc.db.shape() {
		if err := svc.save(); err != nil {
			return nil, err
		}
	}

	session, err := store.LoadSession()
	if err != nil {
		return nil, err
	}
	svc.session = session
	return svc, nil
}

func (svc *Service) save() error        { return svc.store.SaveDatabase(svc.db) }
func (svc *Service) saveSession() error { return svc.store.SaveSession(svc.session) }

// ---- identity ----

// CurrentUser resolves the session to a user record. A stale session (user
// no longer present) reads as signed out.
func (svc *Service) CurrentUser() (User, bool) {
	if svc.session.CurrentUserID == "" {
		return User{}, false
	}
	return svc.UserByID(svc.session.CurrentUserID)
}

// CreateUser creates an account and its empty progress record, and sends
// the welcome email. No session is established; see SignUp.
func (svc *Service) CreateUser(nu NewUser) (User, error) {
	if err := nu.Validate(svc); err != nil {
		return User{}, err
	}

	hash := HashPassword(nu.Password)
	if svc.conf.StrongPasswords {
		var err error
		if hash, err = HashPasswordStrong(nu.Password); err != nil {
			return User{}, err
		}
	}

	usr := User{
		ID:           NewID("u"),
		Name:         nu.Name,
		Email:        nu.Email,
		Role:         nu.Role,
		PasswordHash: hash,
		CreatedAt:    svc.clock.Now(),
	}
	svc.db.Users = append(svc.db.Users, usr)
	svc.ensureProgressNoSave(usr.ID)
	if err := svc.save(); err != nil {
		return User{}, err
	}

	svc.sendMail(usr, "Welcome to "+svc.conf.AppName,
		fmt.Sprintf("Hi %s,\n\nYour %s account is ready. Sign in any time to schedule lessons and practice.\n", usr.Name, strings.ToLower(usr.Role)))
	svc.logInfo("user created", usr.ID)
	return usr, nil
}

// SignUp creates an account and establishes a session for it.
func (svc *Service) SignUp(nu NewUser) (User, error) {
	usr, err := svc.CreateUser(nu)
	if err != nil {
		return User{}, err
	}
	svc.session.CurrentUserID = usr.ID
	if err := svc.saveSession(); err != nil {
		return User{}, err
	}
	return usr, nil
}

// SignIn verifies credentials and establishes a session.
func (svc *Service) SignIn(creds Credentials) (User, error) {
	if err := creds.Validate(); err != nil {
		return User{}, err
	}

	usr, ok := svc.userByEmail(creds.Email)
	if !ok {
		return User{}, ErrNoAccount
	}
	if !CheckPassword(usr.PasswordHash, creds.Password) {
		return User{}, ErrIncorrectPassword
	}

	svc.session.CurrentUserID = usr.ID
	if err := svc.saveSession(); err != nil {
		return User{}, err
	}
	return usr, nil
}

// SignOut clears the session.
func (svc *Service) SignOut() error {
	svc.session.CurrentUserID = ""
	return svc.saveSession()
}

// SetUserPassword rehashes the given user's password. Admin use.
func (svc *Service) SetUserPassword(email, pwd string) error {
	email = core.CleanString(email, true /* lower */)
	for i := range svc.db.Users {
		if strings.EqualFold(svc.db.Users[i].Email, email) {
			svc.db.Users[i].PasswordHash = HashPassword(pwd)
			return svc.save()
		}
	}
	return ErrNotFound
}

func (svc *Service) userByEmail(email string) (User, bool) {
	for _, u := range svc.db.Users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return User{}, false
}

func (svc *Service) checkEmailUniqueness(email string) error {
	if _, exists := svc.userByEmail(email); exists {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}
	return nil
}

// ---- user queries ----

func (svc *Service) UserByID(id string) (User, bool) {
	for _, u := range svc.db.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// NameByID returns the user's display name, or "Unknown".
func (svc *Service) NameByID(id string) string {
	if u, ok := svc.UserByID(id); ok {
		return u.Name
	}
	return "Unknown"
}

func (svc *Service) usersByRole(role string) []User {
	out := make([]User, 0, len(svc.db.Users))
	for _, u := range svc.db.Users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func (svc *Service) Tutors() []User   { return svc.usersByRole(RoleTutor) }
func (svc *Service) Students() []User { return svc.usersByRole(RoleStudent) }

// ---- lesson views ----

// UserLessons returns the lessons the user takes part in: as tutor for
// tutors, as student for everyone else.
func (svc *Service) UserLessons(u User) []Lesson {
	out := make([]Lesson, 0, len(svc.db.Lessons))
	for _, l := range svc.db.Lessons {
		if (u.IsTutor() && l.TutorID == u.ID) || (!u.IsTutor() && l.StudentID == u.ID) {
			out = append(out, l)
		}
	}
	return out
}

// Upcoming returns the user's next accepted lessons, soonest first, capped
// at limit.
func (svc *Service) Upcoming(u User, limit int) []Lesson {
	now := svc.clock.Now()
	out := make([]Lesson, 0, limit)
	for _, l := range svc.UserLessons(u) {
		if l.Status == StatusAccepted && l.Datetime.After(now) {
			out = append(out, l)
		}
	}
	sortLessons(out)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Weekly returns the user's lessons within the next 7 days inclusive,
// regardless of status, soonest first.
func (svc *Service) Weekly(u User) []Lesson {
	now := svc.clock.Now()
	end := now.Add(7 * 24 * time.Hour)
	out := make([]Lesson, 0)
	for _, l := range svc.UserLessons(u) {
		if !l.Datetime.Before(now) && !l.Datetime.After(end) {
			out = append(out, l)
		}
	}
	sortLessons(out)
	return out
}

// PendingRequests returns the tutor's unresolved lesson requests, soonest first.
func (svc *Service) PendingRequests(tutor User) []Lesson {
	out := make([]Lesson, 0)
	for _, l := range svc.UserLessons(tutor) {
		if l.Status == StatusPending {
			out = append(out, l)
		}
	}
	sortLessons(out)
	return out
}

func (svc *Service) LessonByID(id string) (Lesson, bool) {
	for _, l := range svc.db.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

func sortLessons(ls []Lesson) {
	sort.SliceStable(ls, func(i, j int) bool { return ls[i].Datetime.Before(ls[j].Datetime) })
}

// ---- lesson mutations ----

// RequestLesson books a pending lesson for the student with the given tutor.
func (svc *Service) RequestLesson(studentID string, lr LessonRequest) (Lesson, error) {
	if err := lr.Validate(svc.clock); err != nil {
		return Lesson{}, err
	}
	tutor, ok := svc.UserByID(lr.TutorID)
	if !ok || !tutor.IsTutor() {
		return Lesson{}, core.NewValidationError(nil, core.FieldError{Field: "tutorId", Error: "unknown tutor"})
	}
	student, ok := svc.UserByID(studentID)
	if !ok {
		return Lesson{}, ErrNotFound
	}

	l := Lesson{
		ID:        NewID("l"),
		StudentID: student.ID,
		TutorID:   tutor.ID,
		Datetime:  lr.parsed,
		Type:      lr.Type,
		Duration:  lr.Duration,
		Status:    StatusPending,
		CreatedAt: svc.clock.Now(),
	}
	svc.db.Lessons = append(svc.db.Lessons, l)
	if err := svc.save(); err != nil {
		return Lesson{}, err
	}

	svc.sendMail(tutor, "New lesson request",
		fmt.Sprintf("%s requested a %s lesson (%d min) on %s.\n", student.Name, l.Type, l.Duration, l.Datetime.Format(time.RFC1123)))
	return l, nil
}

// RespondToLesson resolves a pending request. Unknown lessons and lessons
// already resolved are a no-op, so resolving twice cannot flip the outcome.
func (svc *Service) RespondToLesson(lessonID, decision string) error {
	if decision != DecisionAccept && decision != DecisionDecline {
		return core.NewValidationError(nil, core.FieldError{Field: "decision", Error: "must be accept or decline"})
	}
	for i := range svc.db.Lessons {
		l := &svc.db.Lessons[i]
		if l.ID != lessonID {
			continue
		}
		if l.Resolved() {
			return nil
		}
		if decision == DecisionAccept {
			l.Status = StatusAccepted
		} else {
			l.Status = StatusDeclined
		}
		if err := svc.save(); err != nil {
			return err
		}
		if student, ok := svc.UserByID(l.StudentID); ok {
			svc.sendMail(student, "Lesson request "+l.Status,
				fmt.Sprintf("Your %s lesson on %s was %s.\n", l.Type, l.Datetime.Format(time.RFC1123), l.Status))
		}
		return nil
	}
	return nil
}

// ---- lesson room ----

// ChatLog returns a lesson's messages in insertion (chronological) order.
func (svc *Service) ChatLog(lessonID string) []ChatMessage {
	return svc.db.Chats[lessonID]
}

// PostChatMessage appends a message to the lesson's chat. Whitespace-only
// text is dropped silently.
func (svc *Service) PostChatMessage(lessonID, senderID, text string) error {
	text = core.CleanString(text)
	if text == "" {
		return nil
	}
	svc.db.Chats[lessonID] = append(svc.db.Chats[lessonID], ChatMessage{
		ID:       NewID("m"),
		SenderID: senderID,
		Text:     text,
		TS:       svc.clock.Now(),
	})
	return svc.save()
}

func (svc *Service) Notes(lessonID string) string { return svc.db.LessonNotes[lessonID] }

// SaveNotes overwrites the lesson's note blob wholesale.
func (svc *Service) SaveNotes(lessonID, text string) error {
	svc.db.LessonNotes[lessonID] = text
	return svc.save()
}

// whiteboard returns the lesson's whiteboard, creating the shell lazily.
func (svc *Service) whiteboard(lessonID string) *Whiteboard {
	w, ok := svc.db.Whiteboards[lessonID]
	if !ok {
		w = &Whiteboard{Strokes: []Stroke{}, Snapshots: []string{}}
		svc.db.Whiteboards[lessonID] = w
	}
	return w
}

// WhiteboardFor returns the lesson's whiteboard state for rendering.
func (svc *Service) WhiteboardFor(lessonID string) Whiteboard {
	return *svc.whiteboard(lessonID)
}

// CommitStroke appends a completed stroke. In-progress strokes are the
// caller's transient state; only released strokes reach the store.
func (svc *Service) CommitStroke(lessonID string, s Stroke) error {
	if len(s.Points) == 0 {
		return nil
	}
	w := svc.whiteboard(lessonID)
	w.Strokes = append(w.Strokes, s)
	return svc.save()
}

// UndoStroke removes the most recently committed stroke.
func (svc *Service) UndoStroke(lessonID string) error {
	w := svc.whiteboard(lessonID)
	if len(w.Strokes) == 0 {
		return nil
	}
	w.Strokes = w.Strokes[:len(w.Strokes)-1]
	return svc.save()
}

// ClearStrokes empties the stroke sequence.
func (svc *Service) ClearStrokes(lessonID string) error {
	w := svc.whiteboard(lessonID)
	w.Strokes = []Stroke{}
	return svc.save()
}

// SaveSnapshot appends an image capture, evicting the oldest past 20.
func (svc *Service) SaveSnapshot(lessonID, image string) error {
	w := svc.whiteboard(lessonID)
	w.Snapshots = append(w.Snapshots, image)
	if len(w.Snapshots) > maxSnapshots {
		w.Snapshots = w.Snapshots[len(w.Snapshots)-maxSnapshots:]
	}
	return svc.save()
}

// EnsureTools creates the lesson's tools record on first room visit.
func (svc *Service) EnsureTools(lessonID string) error {
	if _, ok := svc.db.LessonTools[lessonID]; ok {
		return nil
	}
	svc.db.LessonTools[lessonID] = &LessonTools{Vocab: []VocabEntry{}, Corrections: []Correction{}}
	return svc.save()
}

// ToolsFor returns the lesson's vocabulary and correction lists.
func (svc *Service) ToolsFor(lessonID string) LessonTools {
	if t, ok := svc.db.LessonTools[lessonID]; ok {
		return *t
	}
	return LessonTools{}
}

// AddVocabTerm appends a term to the lesson's vocabulary list. Empty term or
// definition is a no-op.
func (svc *Service) AddVocabTerm(lessonID, term, definition string) error {
	term = core.CleanString(term)
	definition = core.CleanString(definition)
	if term == "" || definition == "" {
		return nil
	}
	if err := svc.EnsureTools(lessonID); err != nil {
		return err
	}
	t := svc.db.LessonTools[lessonID]
	t.Vocab = append(t.Vocab, VocabEntry{Term: term, Definition: definition})
	return svc.save()
}

// AddCorrection appends a correction note. Empty text is a no-op.
func (svc *Service) AddCorrection(lessonID, text string) error {
	text = core.CleanString(text)
	if text == "" {
		return nil
	}
	if err := svc.EnsureTools(lessonID); err != nil {
		return err
	}
	t := svc.db.LessonTools[lessonID]
	t.Corrections = append(t.Corrections, Correction{Text: text})
	return svc.save()
}

// ---- progress ----

func (svc *Service) ensureProgressNoSave(userID string) *Progress {
	p, ok := svc.db.Progress[userID]
	if !ok {
		p = newProgress()
		svc.db.Progress[userID] = p
	}
	return p
}

// EnsureProgress returns the user's progress record, creating it lazily.
func (svc *Service) EnsureProgress(userID string) (*Progress, error) {
	if p, ok := svc.db.Progress[userID]; ok {
		return p, nil
	}
	p := svc.ensureProgressNoSave(userID)
	return p, svc.save()
}

// MarkVocabKnown records whether the user knows a flashcard term.
func (svc *Service) MarkVocabKnown(userID, term string, known bool) error {
	p, err := svc.EnsureProgress(userID)
	if err != nil {
		return err
	}
	p.VocabKnown[term] = known
	return svc.save()
}

// RecordQuizResult appends a quiz attempt to the user's history.
func (svc *Service) RecordQuizResult(userID string, score, total int) error {
	p, err := svc.EnsureProgress(userID)
	if err != nil {
		return err
	}
	p.QuizResults = append(p.QuizResults, QuizResult{Score: score, Total: total, Date: svc.clock.Now()})
	return svc.save()
}

// SubmitWriting appends a writing submission awaiting tutor feedback.
func (svc *Service) SubmitWriting(userID string, nw NewWriting) (WritingSubmission, error) {
	if err := nw.Validate(); err != nil {
		return WritingSubmission{}, err
	}
	p, err := svc.EnsureProgress(userID)
	if err != nil {
		return WritingSubmission{}, err
	}
	w := WritingSubmission{
		ID:     NewID("w"),
		Prompt: nw.Prompt,
		Text:   nw.Text,
		Date:   svc.clock.Now(),
	}
	p.WritingSubmissions = append(p.WritingSubmissions, w)
	return w, svc.save()
}

// SaveFeedback overwrites a submission's feedback and rubric. Unknown
// submissions are a no-op.
func (svc *Service) SaveFeedback(studentID, submissionID, feedback string, rubric Rubric) error {
	p, ok := svc.db.Progress[studentID]
	if !ok {
		return nil
	}
	for i := range p.WritingSubmissions {
		if p.WritingSubmissions[i].ID != submissionID {
			continue
		}
		p.WritingSubmissions[i].Feedback = core.CleanString(feedback)
		p.WritingSubmissions[i].Rubric = rubric
		return svc.save()
	}
	return nil
}

// Stats aggregates a student's history for the progress page.
func (svc *Service) Stats(studentID string) Stats {
	p, ok := svc.db.Progress[studentID]
	if !ok {
		p = newProgress()
	}

	now := svc.clock.Now()
	var attended int
	for _, l := range svc.db.Lessons {
		if l.StudentID == studentID && l.Status == StatusAccepted && l.Datetime.Before(now) {
			attended++
		}
	}

	var avg float64
	if len(p.QuizResults) > 0 {
		var sum float64
		for _, r := range p.QuizResults {
			sum += r.Percent()
		}
		avg = sum / float64(len(p.QuizResults))
	}

	var known int
	for _, v := range p.VocabKnown {
		if v {
			known++
		}
	}

	recent := p.QuizResults
	if len(recent) > 8 {
		recent = recent[len(recent)-8:]
	}
	bars := make([]int, 0, len(recent))
	for _, r := range recent {
		bars = append(bars, int(r.Percent()+0.5))
	}

	return Stats{
		LessonsAttended: attended,
		AvgQuizPercent:  avg,
		VocabKnownCount: known,
		Bars:            bars,
		Writing:         p.WritingSubmissions,
	}
}

// StudentStats pairs a student with their aggregate for the tutor overview.
type StudentStats struct {
	User  User
	Stats Stats
}

// StudentOverview returns every student's aggregate, for the tutor's
// progress table.
func (svc *Service) StudentOverview() []StudentStats {
	students := svc.Students()
	out := make([]StudentStats, 0, len(students))
	for _, s := range students {
		out = append(out, StudentStats{User: s, Stats: svc.Stats(s.ID)})
	}
	return out
}

// ---- preferences ----

func (svc *Service) DarkMode() bool { return svc.db.DarkMode }

func (svc *Service) SetDarkMode(on bool) error {
	svc.db.DarkMode = on
	return svc.save()
}

// ---- internals ----

func (svc *Service) sendMail(to User, subject, body string) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: to.Name, Address: to.Email}},
		Subject: subject,
		BodyStr: body,
	})
}

func (svc *Service) logInfo(msg string, args ...interface{}) {
	if svc.logger != nil {
		svc.logger.Info(msg, args...)
	}
}

func (svc *Service) logError(msg string, err error, args ...interface{}) {
	if svc.logger != nil {
		svc.logger.Error(msg, err, args...)
	}
}
