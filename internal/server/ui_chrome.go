package server

const uiPageChromeCSS = `
    :root {
      --bg: #eef4fb;
      --bg2: #d6e6f7;
      --card: #ffffff;
      --ink: #1d2733;
      --muted: #5d6b7a;
      --ok: #10b981;
      --warn: #f59e0b;
      --bad: #ef4444;
      --accent: #2563eb;
      --line: #c9d8ea;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: "Avenir Next", "Segoe UI", sans-serif;
      color: var(--ink);
      background: radial-gradient(circle at 20% 0%, var(--bg2), var(--bg));
    }
    main { max-width: 960px; margin: 24px auto; padding: 0 16px; }
    .card {
      background: var(--card);
      border: 1px solid var(--line);
      border-radius: 12px;
      padding: 16px;
      margin-bottom: 16px;
      box-shadow: 0 8px 24px rgba(37,99,235,.08);
    }
    .muted { color: var(--muted); font-size: 13px; }
    a { color: var(--accent); text-decoration: none; }
    a:hover { text-decoration: underline; }
    input {
      border: 1px solid var(--line);
      border-radius: 8px;
      padding: 9px 12px;
      font-size: 14px;
      width: 100%;
    }
    button {
      border: 1px solid var(--line);
      border-radius: 8px;
      padding: 9px 14px;
      font-size: 14px;
      line-height: 1.1;
      background: var(--accent);
      color: #ffffff;
      cursor: pointer;
    }
    button:disabled, button.loading {
      opacity: 0.65;
      cursor: default;
    }
    .form-group { margin-bottom: 12px; }
    .form-group label { display: block; font-size: 13px; margin-bottom: 4px; color: var(--muted); }
    .form-group.error input { border-color: var(--bad); }
    .error-message { color: var(--bad); font-size: 12px; margin-top: 4px; }
    .flash-messages { position: fixed; right: 14px; top: 14px; z-index: 2500; display: flex; flex-direction: column; gap: 10px; max-width: min(420px, 92vw); }
    .flash-message { display: flex; justify-content: space-between; gap: 10px; align-items: center; padding: 10px 12px; border-radius: 10px; color: #ffffff; background: #334155; box-shadow: 0 16px 32px rgba(15,23,42,.25); }
    .flash-message.success { background: var(--ok); }
    .flash-message.error { background: var(--bad); }
    .flash-message.warning { background: var(--warn); }
    .flash-message .close-btn { cursor: pointer; font-size: 18px; line-height: 1; }
    .flash-message.animating-out { animation: slideOut 0.3s ease-in forwards; }
    @keyframes slideOut { from { transform: translateX(0); opacity: 1; } to { transform: translateX(100%); opacity: 0; } }
    @keyframes fadeInUp { from { transform: translateY(12px); opacity: 0; } to { transform: translateY(0); opacity: 1; } }
`
