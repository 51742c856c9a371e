package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"bursar/internal/domain/reminder"
)

// DueCheckJob evaluates one reminder's urgency and emits a log
// notification for anything due within the week or overdue.
type DueCheckJob struct {
	reminder *reminder.Reminder
}

func NewDueCheckJob(rem *reminder.Reminder) *DueCheckJob {
	return &DueCheckJob{reminder: rem}
}

func (j *DueCheckJob) Execute(ctx context.Context) error {
	days, status := j.reminder.Status(time.Now())

	switch status {
	case reminder.StatusOverdue:
		log.Printf("Reminder notice: %q for user %d is overdue by %d day(s), amount %s",
			j.reminder.Title, j.reminder.UserID, -days, j.reminder.Amount)
	case reminder.StatusDueToday:
		log.Printf("Reminder notice: %q for user %d is due today, amount %s",
			j.reminder.Title, j.reminder.UserID, j.reminder.Amount)
	case reminder.StatusDueSoon, reminder.StatusUpcoming:
		log.Printf("Reminder notice: %q for user %d is due in %d day(s), amount %s",
			j.reminder.Title, j.reminder.UserID, days, j.reminder.Amount)
	}

	return nil
}

func (j *DueCheckJob) UserID() string {
	return strconv.FormatInt(j.reminder.UserID, 10)
}

func (j *DueCheckJob) Description() string {
	return fmt.Sprintf("Due check for reminder %d", j.reminder.ID)
}

// NotifierConfig holds the polling and pool settings.
type NotifierConfig struct {
	PollInterval time.Duration
	WorkerCount  int
	QueueSize    int
}

// Notifier periodically scans active upcoming reminders across all
// users and fans one due-check job per reminder out to the pool.
type Notifier struct {
	reminderRepo reminder.Repository
	pollInterval time.Duration
	pool         *WorkerPool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewNotifier(reminderRepo reminder.Repository, config NotifierConfig) *Notifier {
	ctx, cancel := context.WithCancel(context.Background())

	return &Notifier{
		reminderRepo: reminderRepo,
		pollInterval: config.PollInterval,
		pool:         NewWorkerPool(config.WorkerCount, config.QueueSize),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start launches the pool and the polling loop. The first scan runs
// immediately.
func (n *Notifier) Start() {
	log.Printf("Starting reminder notifier, polling every %v", n.pollInterval)

	n.pool.Start()

	n.wg.Add(1)
	go n.pollLoop()
}

func (n *Notifier) pollLoop() {
	defer n.wg.Done()

	n.scan()

	ticker := time.NewTicker(n.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-n.ctx.Done():
			return
		case <-ticker.C:
			n.scan()
		}
	}
}

func (n *Notifier) scan() {
	ctx, cancel := context.WithTimeout(n.ctx, 10*time.Second)
	defer cancel()

	reminders, err := n.reminderRepo.ListAllUpcoming(ctx)
	if err != nil {
		log.Printf("Notifier: failed to list upcoming reminders: %v", err)
		return
	}
	if len(reminders) == 0 {
		return
	}

	jobs := make([]Job, 0, len(reminders))
	for _, rem := range reminders {
		jobs = append(jobs, NewDueCheckJob(rem))
	}
	n.pool.SubmitBatch(jobs)
}

// Shutdown stops the polling loop, then drains the pool within the
// timeout.
func (n *Notifier) Shutdown(timeout time.Duration) {
	log.Println("Notifier: shutting down")

	n.cancel()
	n.wg.Wait()
	n.pool.ShutdownWithTimeout(timeout)

	log.Println("Notifier: shutdown complete")
}
