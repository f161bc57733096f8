// Package email delivers transactional messages for account flows.
//
// Senders implement EmailSender. PostmarkSender talks to the Postmark API and
// DevSender writes messages to the log (and optionally to disk) for local
// work. NewSender picks one from Config.
//
// ResetNotifier adapts a sender to auth.WithAfterResetRequest so reset tokens
// are mailed to the account owner:
//
//	sender, err := email.NewSender(cfg, log)
//	if err != nil {
//		return err
//	}
//	notify := email.NewResetNotifier(sender, cfg.ResetURL)
//	svc := auth.NewService(users, hasher, store, auth.WithAfterResetRequest(notify.Notify))
package email
